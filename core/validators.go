package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	horarioTag   = "horario"
	horarioText  = "horário inválido; esperado HH:MM"
	horarioRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	meiaNotaTag  = "meianota"
	meiaNotaText = "nota deve estar entre 0 e 10, em intervalos de 0.5"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "este campo é obrigatório"
)

func init() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	Translator, _ = uni.GetTranslator("en")

	Validate = validator.New()
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(horarioTag, horarioValidation)
	RegisterCustomTranslation(horarioTag, horarioText)

	_ = Validate.RegisterValidation(meiaNotaTag, meiaNotaValidation)
	RegisterCustomTranslation(meiaNotaTag, meiaNotaText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
	RegisterCustomTranslation(requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// horarioValidation only allows 24h "HH:MM" times.
func horarioValidation(fl validator.FieldLevel) bool {
	return horarioRegex.MatchString(fl.Field().String())
}

// meiaNotaValidation enforces the grading scale: [0, 10] in steps of 0.5.
func meiaNotaValidation(fl validator.FieldLevel) bool {
	nota := fl.Field().Float()
	if nota < 0 || nota > 10 {
		return false
	}
	doubled := nota * 2
	return doubled == float64(int64(doubled))
}
