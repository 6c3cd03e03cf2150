//go:build wireinject
// +build wireinject

package app

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/eslsoft/parlato/internal/adapter/ai"
	adapterhttp "github.com/eslsoft/parlato/internal/adapter/http"
	"github.com/eslsoft/parlato/internal/adapter/repository"
	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/infrastructure/config"
	"github.com/eslsoft/parlato/internal/infrastructure/database"
	"github.com/eslsoft/parlato/internal/infrastructure/server"
	"github.com/eslsoft/parlato/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var catalogSet = wire.NewSet(
	catalog.Load,
)

var repositorySet = wire.NewSet(
	repository.NewBrainRepository,
	repository.NewGameConfigRepository,
)

var usecaseSet = wire.NewSet(
	ai.NewClient,
	usecase.NewLessonUsecase,
	usecase.NewExamUsecase,
	usecase.NewProgressUsecase,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	adapterhttp.NewHandler,
	adapterhttp.NewRouter,
	wire.Bind(new(stdhttp.Handler), new(*gin.Engine)),
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		catalogSet,
		repositorySet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server"),
	)
	return nil, nil, nil
}
