// Package labels turns structural relationship kinds into human readable,
// localised terms.
//
// Layout code describes how a person relates to the root as a [Term]: a
// [Kind] such as [Ancestor] plus a distance and an in-law flag. A [Labeler]
// renders that term in one of the supported languages:
//
//	l := labels.New(language.German)
//	l.Label(labels.Term{Kind: labels.Ancestor, Distance: 3}) // "Urgroßelternteil"
//
// Language selection uses a [language.Matcher], so regional variants such as
// de-CH or en-GB fall back to their base language and unsupported tags fall
// back to English. Labels never influence coordinates.
package labels
