package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"runtime"

	"pixel-veil/internal/config"
	"pixel-veil/internal/controllers"
	"pixel-veil/internal/logger"
	"pixel-veil/internal/models"
	"pixel-veil/internal/services"
	"pixel-veil/internal/shutdown"
	"pixel-veil/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Data Hiding Tool"
	AppID      = "com.pixelveil.datahiding"
	AppVersion = "1.0.0"
)

// Application wires the desktop tool together
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	logFile io.Closer

	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration")
	flag.Parse()

	application, err := NewApplication(*configPath)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	application.Run()
}

// NewApplication loads configuration and builds the MVC components
func NewApplication(configPath string) (*Application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	appLogger, logFile, err := logger.Open(cfg.LogLevel(), cfg.Logging.File)
	if err != nil {
		return nil, err
	}

	appLogger.Info("Application starting", map[string]interface{}{
		"version":       AppVersion,
		"config":        configPath,
		"backend":       cfg.Processing.Backend,
		"interpolation": cfg.Processing.Interpolation,
		"workers":       cfg.Processing.Workers,
		"go_version":    runtime.Version(),
		"log_level":     cfg.LogLevel().String(),
	})

	stego, err := services.FromConfig(cfg, appLogger.WithComponent("service"))
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("building services: %w", err)
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(1100, 800))
	window.CenterOnScreen()

	controller := controllers.NewMainController(
		stego,
		models.NewSessionRepository(),
		models.NewProcessingStateRepository(),
		appLogger.WithComponent("controller"),
	)
	view := views.NewMainView(window)
	controller.SetView(view)

	view.SetUploadCoverHandler(controller.UploadCover)
	view.SetUploadSecretHandler(controller.UploadSecret)
	view.SetHideHandler(controller.HideImage)
	view.SetExtractHandler(controller.ExtractImage)
	view.SetMetricsHandler(controller.CalculateMetrics)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		logFile:    logFile,
		controller: controller,
		view:       view,
		shutdown:   shutdown.NewManager(appLogger),
	}

	application.shutdown.Register("log file", shutdown.Func(func() { logFile.Close() }))
	application.shutdown.Register("controller", controller)

	window.SetOnClosed(func() {
		application.logger.Info("Window closed", nil)
		application.shutdown.Shutdown()
	})

	return application, nil
}

// Run shows the window and blocks until the app quits
func (app *Application) Run() {
	app.shutdown.Listen(func() {
		fyne.Do(app.fyneApp.Quit)
	})

	app.view.Show()
	app.fyneApp.Run()

	app.shutdown.Shutdown()
}
