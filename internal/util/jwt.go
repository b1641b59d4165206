package util

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenExpiry 从令牌中读取过期时间。客户端不持有签名密钥，
// 只做未验证解析，令牌的真正校验由服务端完成。
func TokenExpiry(tokenString string) (time.Time, error) {
	if tokenString == "" {
		return time.Time{}, errors.New("令牌为空")
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	_, _, err := parser.ParseUnverified(tokenString, claims)
	if err != nil {
		return time.Time{}, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("令牌缺少过期时间")
	}
	return time.Unix(int64(exp), 0), nil
}

// TokenExpired 判断本地缓存的令牌是否已过期。
// 解析失败时按已过期处理，交给登录流程重新获取。
func TokenExpired(tokenString string) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return true
	}
	return time.Now().After(exp)
}
