package middlewares

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/HeroHarith/Tickets-sub001/src/db"
	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(401)
		return
	}
	reqToken := strings.Split(bearerToken, " ")[1]
	if reqToken == "" {
		ctx.AbortWithStatus(401)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		if err == jwt.ErrSignatureInvalid || err == jwt.ErrTokenMalformed {
			ctx.AbortWithStatus(401)
			return
		}
		ctx.AbortWithError(401, err)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(401)
		return
	}

	db := db.GetDb()
	var user models.User
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatus(401)
		return
	}
	db.Model(&models.User{}).Where(&models.User{ID: uint(uid)}).Find(&user)

	if uint(uid) != user.ID || user.ID < 1 {
		ctx.AbortWithStatus(401)
		return
	}
	ctx.Set("email", user.Email)
	ctx.Set("id", user.ID)
	ctx.Set("role", user.Role)
}

// RequireRoles gates a route group to the given roles. AuthMiddleware must
// run first so the role is already on the context.
func RequireRoles(roles ...types.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, ok := ctx.Get("role")
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		role, ok := value.(types.Role)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				return
			}
		}
		err := types.NewForbiddenError("role [%s] may not access this resource", role)
		ctx.AbortWithStatusJSON(types.StatusForError(err), types.APIResponse{
			Success:     false,
			Code:        http.StatusForbidden,
			Description: err.Error(),
		})
	}
}
