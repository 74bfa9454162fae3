package user

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

//go:embed assets/common-passwords.txt.gz
var assetsFS embed.FS

var (
	nivelTag  = "nivel"
	nivelText = "nível de acesso inválido"

	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("a senha deve conter pelo menos %d caracteres", pwdMinLen)

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "a senha não pode conter espaços"

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = "a senha não pode ser inteiramente numérica"

	pwdComplexityTag  = "pwdcplx"
	pwdComplexityText = "a senha deve conter pelo menos 1 letra maiúscula, 1 minúscula, 1 dígito e 1 caractere especial"
	specialRegex      = regexp.MustCompile("[^A-Za-z0-9]")

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "a senha não pode ser semelhante aos seus dados pessoais"

	pwdNoCommonTag  = "pwdnocommon"
	pwdNoCommonText = "esta senha é muito comum"
	commonPasswords []string
)

func init() {
	loadCommonPasswords()

	// register validators
	_ = core.Validate.RegisterValidation(nivelTag, nivelValidation)
	core.RegisterCustomTranslation(nivelTag, nivelText)

	core.Validate.RegisterStructValidation(userStructValidation, NewUser{})
	core.Validate.RegisterStructValidation(userStructValidation, UpdateUser{})
	core.RegisterCustomTranslation(pwdMinLenTag, pwdMinLenText)
	core.RegisterCustomTranslation(pwdNoSpaceTag, pwdNoSpaceText)
	core.RegisterCustomTranslation(pwdNotAllNumTag, pwdNotAllNumText)
	core.RegisterCustomTranslation(pwdComplexityTag, pwdComplexityText)
	core.RegisterCustomTranslation(pwdAttrSimTag, pwdAttrSimText)
	core.RegisterCustomTranslation(pwdNoCommonTag, pwdNoCommonText)
}

func loadCommonPasswords() {
	data, err := assetsFS.ReadFile("assets/common-passwords.txt.gz")
	if err != nil {
		return
	}
	gzRdr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return
	}
	scanner := bufio.NewScanner(gzRdr)
	for scanner.Scan() {
		commonPasswords = append(commonPasswords, strings.TrimSpace(scanner.Text()))
	}
	sort.Strings(commonPasswords)
}

// Custom Validators

// nivelValidation checks that the provided nível is one of AllNiveis.
func nivelValidation(fl validator.FieldLevel) bool {
	nivel := fl.Field().String()
	for _, n := range AllNiveis {
		if nivel == n {
			return true
		}
	}
	return false
}

// userStructValidation does struct level validation on NewUser and UpdateUser structs.
func userStructValidation(sl validator.StructLevel) {
	switch usr := sl.Current().Interface().(type) {
	case NewUser:
		validateSenha(usr.Senha, usr.Nome, usr.Email, sl)
	case UpdateUser:
		if usr.Senha != "" {
			validateSenha(usr.Senha, usr.Nome, usr.Email, sl)
		}
	}
}

// validateSenha applies the password policy to the provided password:
// - minLen: 8
// - no whitespace
// - not all numeric
// - complexity: 1 upper, 1 lower, 1 digit, 1 special
// - no user attrs similarity
// - no common password
func validateSenha(senha, nome, email string, sl validator.StructLevel) {
	reportErr := func(tag string) {
		sl.ReportError(senha, "senha", "Senha", tag, "")
	}

	var (
		digitCount         int
		hasUpper, hasLower bool
		hasDig, hasSpecial bool
	)

	// - minLen: 8
	senhaLen := len(senha)
	if senhaLen < pwdMinLen {
		reportErr(pwdMinLenTag)
		return
	}
	for _, char := range []rune(senha) {
		// - no whitespace
		if unicode.IsSpace(char) {
			reportErr(pwdNoSpaceTag)
			return
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
		if !hasUpper && unicode.IsUpper(char) {
			hasUpper = true
		}
		if !hasLower && unicode.IsLower(char) {
			hasLower = true
		}
	}

	// - not all numeric
	if digitCount == senhaLen {
		reportErr(pwdNotAllNumTag)
		return
	}

	// - complexity: 1 upper, 1 lower, 1 digit & 1 special
	hasDig = digitCount > 0
	hasSpecial = specialRegex.MatchString(senha)
	if !(hasUpper && hasLower && hasDig && hasSpecial) {
		reportErr(pwdComplexityTag)
		return
	}

	// - no user attrs similarity
	getRatio := func(pass, usrAttr string) float64 {
		if usrAttr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(pass, ""), strings.Split(usrAttr, "")).QuickRatio()
	}
	if getRatio(senha, nome) >= pwdMaxSim || getRatio(senha, email) >= pwdMaxSim {
		reportErr(pwdAttrSimTag)
		return
	}

	// - no common passwords
	lsenha := strings.ToLower(senha)
	if idx := sort.SearchStrings(commonPasswords, lsenha); idx < len(commonPasswords) {
		if match := commonPasswords[idx]; lsenha == match {
			reportErr(pwdNoCommonTag)
			return
		}
	}
}
