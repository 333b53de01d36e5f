package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/infrastructure/logger"
	"github.com/qrdine/backend/internal/interfaces/http/dto"
)

// Where the restaurant scope of a staff request comes from
const (
	RestaurantHeader     = "X-Restaurant-ID"
	RestaurantQueryParam = "restaurant_id"
	restaurantContextKey = "restaurant_uuid"
)

// RestaurantScope resolves the restaurant a request works on from the
// X-Restaurant-ID header, falling back to the restaurant_id query parameter.
// A missing or malformed id is answered with 400. The id is added to the
// request logger and to the request context.
func RestaurantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(RestaurantHeader)
		if raw == "" {
			raw = c.Query(RestaurantQueryParam)
		}
		if raw == "" {
			abortScope(c, "Restaurant ID is required (X-Restaurant-ID header or restaurant_id query parameter)")
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			abortScope(c, "Invalid restaurant ID format")
			return
		}

		c.Set(restaurantContextKey, id)
		c.Set(logger.GinRestaurantIDKey, id.String())

		ctx, enriched := logger.WithRestaurantID(c.Request.Context(), logger.GetGinLogger(c), id.String())
		c.Request = c.Request.WithContext(ctx)
		logger.SetGinLogger(c, enriched)

		c.Next()
	}
}

// OptionalRestaurantScope applies RestaurantScope only when an id was sent.
// Used by endpoints customers call without a scope, such as placing an order by QR token.
func OptionalRestaurantScope() gin.HandlerFunc {
	scope := RestaurantScope()
	return func(c *gin.Context) {
		if c.GetHeader(RestaurantHeader) == "" && c.Query(RestaurantQueryParam) == "" {
			c.Next()
			return
		}
		scope(c)
	}
}

// GetRestaurantID returns the id resolved by RestaurantScope, or uuid.Nil
func GetRestaurantID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(restaurantContextKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func abortScope(c *gin.Context, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeRestaurantRequired), dto.NewErrorResponseWithRequestID(
		dto.ErrCodeRestaurantRequired, message, GetRequestID(c),
	))
}
