package constants

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type ContextKey string

const (
	AppKey       ContextKey = "app"
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	ParamsKey    ContextKey = "params"
	RequestStart ContextKey = "requestStart"
)

var (
	Validate   = validator.New(validator.WithRequiredStructEnabled())
	Translator ut.Translator
)

func init() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	Translator, _ = uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(Validate, Translator); err != nil {
		panic(err)
	}
}
