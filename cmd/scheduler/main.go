package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/app"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunScheduler(); err != nil {
		logger.Fatal("run scheduler failed", zap.Error(err))
	}
}
