package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"study-hub/internal/model"
)

// 自定义校验标签与英文提示
const (
	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"

	weekdayTag  = "weekday"
	weekdayText = "{0} must be a day of the week (Monday to Sunday)"

	hhmmTag  = "hhmm"
	hhmmText = "{0} must be a 24-hour time in HH:MM format"

	rubricCategoryTag  = "rubric_category"
	rubricCategoryText = "{0} must be one of: " // 追加分类列表
)

// InvalidBodyMessage 请求体无法解析时的提示
const InvalidBodyMessage = "Invalid request body"

var hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var (
	once       sync.Once
	setupErr   error
	translator ut.Translator
)

// Setup 在 gin 默认校验器上注册自定义规则与英文翻译，可重复调用
func Setup() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin 校验引擎不是 validator/v10")
			return
		}

		// 错误信息使用 JSON 字段名
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		translator, _ = uni.GetTranslator("en")
		if err := entranslations.RegisterDefaultTranslations(v, translator); err != nil {
			setupErr = err
			return
		}

		custom := []struct {
			tag  string
			fn   validator.Func
			text string
		}{
			{notBlankTag, notBlank, notBlankText},
			{weekdayTag, weekday, weekdayText},
			{hhmmTag, hhmm, hhmmText},
			{rubricCategoryTag, rubricCategory, rubricCategoryText + strings.Join(model.RubricCategories, ", ")},
		}
		for _, c := range custom {
			if err := v.RegisterValidation(c.tag, c.fn); err != nil {
				setupErr = err
				return
			}
			if err := registerTranslation(v, c.tag, c.text); err != nil {
				setupErr = err
				return
			}
		}
	})
	return setupErr
}

func registerTranslation(v *validator.Validate, tag, text string) error {
	return v.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Message 将绑定错误转换为面向用户的英文提示
// 仅返回第一条校验错误，与前端单行错误展示保持一致
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && translator != nil {
		return verrs[0].Translate(translator)
	}
	return InvalidBodyMessage
}

// ── 自定义规则 ──

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func weekday(fl validator.FieldLevel) bool {
	return model.WeekdayIndex(fl.Field().String()) >= 0
}

func hhmm(fl validator.FieldLevel) bool {
	return hhmmRegex.MatchString(fl.Field().String())
}

func rubricCategory(fl validator.FieldLevel) bool {
	return model.ValidRubricCategory(fl.Field().String())
}
