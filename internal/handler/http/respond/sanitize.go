package respond

import (
	"regexp"
)

var (
	// Authorization ヘッダー値のパターン
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.=]+`)
	// JWT（header.payload.signature）のパターン
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)
	// key=value 形式のシークレット
	secretPattern = regexp.MustCompile(`(?i)(secret|password|token)=([^\s&]+)`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// 順序重要: より具体的なパターンから適用
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	msg = secretPattern.ReplaceAllString(msg, "$1=****")

	return msg
}
