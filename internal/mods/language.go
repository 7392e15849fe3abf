package mods

import (
	"lectern/internal/cocina"
)

// writeLanguages emits language elements with text and code terms. The
// language marked primary carries usage="primary".
func writeLanguages(root *Element, languages []cocina.Language) {
	for _, lang := range languages {
		el := root.Child("language")
		if lang.Status == "primary" {
			el.Set("usage", "primary")
		}
		setDisplayLabel(el, lang.DisplayLabel)

		if lang.Value != "" {
			term := el.Child("languageTerm")
			term.Set("type", "text")
			setLanguageAuthority(term, lang)
			term.SetText(lang.Value)
		}
		if lang.Code != "" {
			term := el.Child("languageTerm")
			term.Set("type", "code")
			setLanguageAuthority(term, lang)
			term.SetText(lang.Code)
		}

		if lang.Script != nil {
			if lang.Script.Value != "" {
				term := el.Child("scriptTerm")
				term.Set("type", "text")
				setAuthority(term, *lang.Script)
				term.SetText(lang.Script.Value)
			}
			if lang.Script.Code != "" {
				term := el.Child("scriptTerm")
				term.Set("type", "code")
				setAuthority(term, *lang.Script)
				term.SetText(canonicalScript(lang.Script.Code))
			}
		}
	}
}

func setLanguageAuthority(el *Element, lang cocina.Language) {
	if lang.Source != nil {
		if lang.Source.Code != "" {
			el.Set("authority", lang.Source.Code)
		}
		if lang.Source.URI != "" {
			el.Set("authorityURI", lang.Source.URI)
		}
	}
	if lang.URI != "" {
		el.Set("valueURI", lang.URI)
	}
}
