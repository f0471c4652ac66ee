package i18n

import (
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
)

// LocalsKey is the fiber.Ctx locals key holding the request's ut.Translator.
const LocalsKey = "T"

var UT = ut.New(en.New(), en.New(), zh.New())

// Translator finds the best translator for an Accept-Language header value,
// falling back to English.
func Translator(acceptLanguage string) ut.Translator {
	var locales []string
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		locales = append(locales, strings.ReplaceAll(tag, "-", "_"))
		if base, _, found := strings.Cut(tag, "-"); found {
			locales = append(locales, base)
		}
	}
	if len(locales) == 0 {
		t, _ := UT.GetTranslator("en")
		return t
	}
	t, _ := UT.FindTranslator(locales...)
	return t
}
