package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/token"
)

// actorContextKey はechoコンテキストに操作主体を格納するキー
const actorContextKey = "actor"

// JWTAuth はBearerトークンを検証し、操作主体をコンテキストへ設定する
// トークンがない・無効な場合は401を返す
func JWTAuth(tokenManager *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
			}
			tokenString, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorizationヘッダーの形式が不正です")
			}
			actor, err := tokenManager.Parse(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// RequireRole は指定ロールを持つ操作主体のみ通過させる
// JWTAuthの後段に置くこと
func RequireRole(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
			}
			if actor.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "権限がありません")
			}
			return next(c)
		}
	}
}

// ActorFrom はコンテキストから操作主体を取り出す
func ActorFrom(c echo.Context) (user.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(user.Actor)
	return actor, ok
}
