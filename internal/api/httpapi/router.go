package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"faceduker/internal/api/ws"
	"faceduker/internal/container"
	"faceduker/internal/domain/entity"
)

// MaxUploadSize предел размера загружаемого файла
const MaxUploadSize = 32 << 20

type handler struct {
	app *container.Container
}

// NewRouter собирает gin-роутер со всеми HTTP-точками и WebSocket-каналом /endpoint
func NewRouter(c *container.Container, socket *ws.Handler) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = MaxUploadSize

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(Logger())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST"},
		AllowHeaders:    []string{"Origin", "Content-Type", headerRequestID},
		ExposeHeaders:   []string{"Content-Length", headerRequestID},
	}))

	h := &handler{app: c}

	router.GET("/", h.hello)
	router.POST("/duker", h.duker)
	router.GET("/send", h.send)
	router.POST("/send", h.send)
	router.POST("/queue", h.queue)
	if socket != nil {
		router.GET("/endpoint", socket.Serve)
	}

	return router
}

func (h *handler) hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

// duker синхронно рисует узор на загруженной картинке и отдаёт её в том же формате
func (h *handler) duker(c *gin.Context) {
	variant, err := entity.ParseVariant(c.Query("variant"))
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := h.app.PipelineService.Transform(c.Request.Context(), data, variant)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("X-Faces", fmt.Sprint(out.Faces))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

func (h *handler) send(c *gin.Context) {
	msg := c.Query("msg")
	if msg == "" {
		msg = c.PostForm("msg")
	}
	if msg == "" {
		writeError(c, errMissingMessage)
		return
	}

	if _, err := h.app.MessagingService.Send(c.Request.Context(), msg); err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, "OK")
}

func (h *handler) queue(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}

	id, err := h.app.ConversionService.Enqueue(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("X-Message-ID", id)
	c.String(http.StatusOK, "OK")
}

var (
	errMissingFile    = errors.New("multipart field \"file\" is required")
	errMissingMessage = errors.New("parameter \"msg\" is required")
)

func readUpload(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errMissingFile
	}
	if fh.Size > MaxUploadSize {
		return nil, fmt.Errorf("%w: file is larger than %d bytes", entity.ErrDecodeFailure, MaxUploadSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errMissingFile),
		errors.Is(err, errMissingMessage),
		errors.Is(err, entity.ErrDecodeFailure),
		errors.Is(err, entity.ErrUnknownVariant):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrDetectionUnavailable),
		errors.Is(err, entity.ErrQueueClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusOf(err), gin.H{"error": err.Error()})
}
