package rule

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	blurhashMinLen = 6
	blurhashMaxLen = 100
	objectIDMaxLen = 36
)

// blurhash 使用 base83 字符集；这里只做字符集与长度校验，不做结构解码.
var (
	blurhashPattern = regexp.MustCompile(`^[0-9A-Za-z#$%*+,\-./:;=?@\[\]^_{|}~]+$`)
	objectIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._\-/]*$`)
)

// validBlurhash 校验 blurhash 占位串：长度 6~100 且仅含 base83 字符.
func validBlurhash(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < blurhashMinLen || len(s) > blurhashMaxLen {
		return false
	}

	return blurhashPattern.MatchString(s)
}

// validObjectID 校验对象存储键/相册 ID：字母数字开头，仅含 [a-zA-Z0-9._-/].
func validObjectID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > objectIDMaxLen*4 {
		return false
	}

	return objectIDPattern.MatchString(s)
}

// RegisterMediaRules 注册相册领域的自定义校验规则（幂等）.
// 当前包含：
//   - blurhash: 占位图哈希
//   - objectid: 对象键 / 相册 ID
func RegisterMediaRules() error {
	if err := RegisterValidation("blurhash", validBlurhash); err != nil {
		return err
	}

	return RegisterValidation("objectid", validObjectID)
}

// RegisterMediaRulesWith 将领域规则注册到外部 validator 实例（如 gin 的 binding 引擎）.
func RegisterMediaRulesWith(v *validator.Validate) error {
	if err := v.RegisterValidation("blurhash", validBlurhash); err != nil {
		return err
	}

	return v.RegisterValidation("objectid", validObjectID)
}
