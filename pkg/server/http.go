package server

import (
	"encoding/json"
	"io"
	"net/http"

	"event-handlers-api/internal/handlers"
	"event-handlers-api/internal/middleware"
	"event-handlers-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

// NewHTTPServer mounts every function router on a gin engine for local
// development. API routes are translated into proxy events; POST
// /invoke/:function forwards a raw event payload unchanged.
func NewHTTPServer(c *Container) *gin.Engine {
	if c.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(c.Logger))
	router.Use(middleware.Metrics(c.Metrics))
	router.Use(middleware.RateLimiter(c.Config.RateLimit.RPS, c.Config.RateLimit.Burst, c.Logger))
	router.Use(middleware.RequestSizeLimit(maxBodyBytes))

	router.POST("/process", c.proxy(handlers.FunctionDataProcessor, "/process"))
	router.GET("/health", c.proxy(handlers.FunctionHealthCheck, "/health"))
	router.POST("/notify", c.proxy(handlers.FunctionNotification, "/notify"))
	router.POST("/users", c.proxy(handlers.FunctionUserManagement, "/users"))
	router.GET("/users", c.proxy(handlers.FunctionUserManagement, "/users"))
	router.GET("/users/:id", c.proxy(handlers.FunctionUserManagement, "/users/{id}"))

	router.POST("/invoke/:function", c.invoke)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Metrics.Registry, promhttp.HandlerOpts{})))

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": lambda.MsgResourceNotFound})
	})

	return router
}

// proxy translates the gin request into an API Gateway proxy event for function
func (c *Container) proxy(function, resource string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		event, err := ProxyEventFromRequest(ctx, resource)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}

		payload, err := json.Marshal(event)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": lambda.MsgInternalError})
			return
		}

		c.dispatch(ctx, function, payload)
	}
}

// invoke forwards a raw event (for example an S3 or SNS batch) to a function
func (c *Container) invoke(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	c.dispatch(ctx, ctx.Param("function"), payload)
}

func (c *Container) dispatch(ctx *gin.Context, function string, payload []byte) {
	router, err := c.Router(function)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": lambda.MsgResourceNotFound})
		return
	}

	resp := router.Dispatch(ctx.Request.Context(), payload)
	for k, v := range resp.Headers {
		ctx.Header(k, v)
	}
	ctx.Data(resp.StatusCode, "application/json", resp.Body)
}

// ProxyEventFromRequest builds the proxy event API Gateway would deliver for
// the request. Multi-valued headers and query parameters keep their first value.
func ProxyEventFromRequest(ctx *gin.Context, resource string) (events.APIGatewayProxyRequest, error) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}

	event := events.APIGatewayProxyRequest{
		HTTPMethod: ctx.Request.Method,
		Path:       ctx.Request.URL.Path,
		Resource:   resource,
		Body:       string(body),
		Headers:    make(map[string]string, len(ctx.Request.Header)),
	}
	for k := range ctx.Request.Header {
		event.Headers[k] = ctx.Request.Header.Get(k)
	}

	if query := ctx.Request.URL.Query(); len(query) > 0 {
		event.QueryStringParameters = make(map[string]string, len(query))
		for k := range query {
			event.QueryStringParameters[k] = query.Get(k)
		}
	}
	if len(ctx.Params) > 0 {
		event.PathParameters = make(map[string]string, len(ctx.Params))
		for _, p := range ctx.Params {
			event.PathParameters[p.Key] = p.Value
		}
	}

	return event, nil
}
