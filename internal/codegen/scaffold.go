package codegen

import (
	"context"

	"github.com/koustreak/dbscaffold/internal/naming"
	"github.com/koustreak/dbscaffold/internal/scaffold"
)

func (g *DefaultGenerator) GenerateIRepository(ctx context.Context, ifName, modelName string) (string, error) {
	return g.engine.Render(ctx, scaffold.KindIRepository, scaffold.Tokens{
		"IF_NAME":    ifName,
		"MODEL_NAME": modelName,
	})
}

func (g *DefaultGenerator) GenerateRepository(ctx context.Context, ifName, clsName, modelName string) (string, error) {
	return g.engine.Render(ctx, scaffold.KindRepository, scaffold.Tokens{
		"IF_NAME":    ifName,
		"CLS_NAME":   clsName,
		"MODEL_NAME": modelName,
	})
}

func (g *DefaultGenerator) GenerateIService(ctx context.Context, iServiceName, dtoName string) (string, error) {
	return g.engine.Render(ctx, scaffold.KindIService, scaffold.Tokens{
		"IServiceName": iServiceName,
		"DTO_NAME":     dtoName,
	})
}

func (g *DefaultGenerator) GenerateService(ctx context.Context, serviceName, iServiceName, iRepositoryName, dtoName, modelName string) (string, error) {
	return g.engine.Render(ctx, scaffold.KindService, scaffold.Tokens{
		"ServiceName":  serviceName,
		"IServiceName": iServiceName,
		"IRepository":  iRepositoryName,
		"DTO_NAME":     dtoName,
		"MODEL_NAME":   modelName,
	})
}

// GenerateController renders the controller; LMODEL_NAME is modelName with
// its first character lowercased.
func (g *DefaultGenerator) GenerateController(ctx context.Context, controllerName, iServiceName, dtoName, modelName string) (string, error) {
	return g.engine.Render(ctx, scaffold.KindController, scaffold.Tokens{
		"ControllerName": controllerName,
		"IServiceName":   iServiceName,
		"DTO_NAME":       dtoName,
		"MODEL_NAME":     modelName,
		"LMODEL_NAME":    naming.LowerFirst(modelName),
	})
}
