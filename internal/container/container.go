package container

import (
	app "faceduker/internal/application"
	"faceduker/internal/domain/port"
)

type Container struct {
	UserService       *app.UserService
	PipelineService   *app.PipelineService
	ConversionService *app.ConversionService
	MessagingService  *app.MessagingService
}

func New(
	userRepo port.UserRepository,
	locator port.FaceLocator,
	queue port.Queue,
	broadcaster port.Broadcaster,
	resizedWidth int,
) *Container {
	pipelineService := app.NewPipelineService(locator, resizedWidth)

	return &Container{
		UserService:       app.NewUserService(userRepo),
		PipelineService:   pipelineService,
		ConversionService: app.NewConversionService(pipelineService, queue, broadcaster),
		MessagingService:  app.NewMessagingService(queue, broadcaster),
	}
}
