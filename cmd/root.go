/*
Copyright © 2022 Joker
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "sysafari.com/customs/mguard/docs"
	"sysafari.com/customs/mguard/logging"
	"sysafari.com/customs/mguard/manifest"
	"sysafari.com/customs/mguard/rabbit"
	"sysafari.com/customs/mguard/store"
	"sysafari.com/customs/mguard/web"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mguard",
	Short: "Classify and liquidate the packages of customs manifests",
	Long: `mguard assigns tariff codes to the packages of a courier manifest,
computes their duties and taxes, flags restricted and under-declared goods and
keeps the results for manual review. Running it without a subcommand starts:
1. the manifest request consumer (rabbitmq)
2. the web service (classification, taxes, review, report download)
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	c, err := newComponents()
	if err != nil {
		return err
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	var liqStore web.LiquidationStore
	var saver manifest.BatchSaver
	if db != nil {
		defer db.Close()
		s := store.New(db)
		if err = s.Migrate(ctx); err != nil {
			return err
		}
		liqStore, saver = s, s
	} else {
		log.Warn("mysql.url is empty, batches are not persisted")
	}

	svc := manifest.NewService(c.processor, c.detector, saver, c.writer, publishResponse)
	go manifestConsumerStart(ctx, svc)

	h := web.NewHandler(c.processor, c.tariffs, c.workflow, c.detector, liqStore, c.settings.Report.Dir)
	return echoRoutes(ctx, h)
}

// echoRoutes Set echo routes
// @title mguard web service
// @version 1.0
// @description Tariff classification, tax liquidation and manual review of customs manifests
// @termsOfService http://swagger.io/terms/

// @contact.name Joker
// @contact.email ljr@y-clouds.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:1324
// @BasePath /
func echoRoutes(ctx context.Context, h *web.Handler) error {
	e := echo.New()
	e.HideBanner = true
	// swagger
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// api exp:
	// http://localhost:{port}/report/LIQ_MAWB-77_20261015080000.xlsx?download=1
	h.Register(e)

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			log.Errorf("Shutdown web server failed: %v", err)
		}
	}()

	port := viper.GetString("port")
	log.Infof("mguard web server starting on :%s", port)
	if err := e.Start(":" + port); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func manifestConsumerStart(ctx context.Context, svc *manifest.Service) {
	rbmq := &rabbit.Rabbit{
		Url:          viper.GetString("rabbitmq.url"),
		Exchange:     viper.GetString("rabbitmq.exchange"),
		ExchangeType: viper.GetString("rabbitmq.exchange-type"),
		Queue:        viper.GetString("rabbitmq.queue.manifest-req"),
	}
	if rbmq.Url == "" {
		log.Warn("rabbitmq.url is empty, manifest consumer not started")
		return
	}

	log.Infof("Starting ... manifest request consumer: %v ", rbmq)
	if err := rabbit.Consume(ctx, rbmq, svc.HandleMessage); err != nil && ctx.Err() == nil {
		log.Errorf("Manifest consumer stopped: %v", err)
	}
}

func publishResponse(res *manifest.Response) error {
	rbmq := &rabbit.Rabbit{
		Url:          viper.GetString("rabbitmq.url"),
		Exchange:     viper.GetString("rabbitmq.exchange"),
		ExchangeType: viper.GetString("rabbitmq.exchange-type"),
		Queue:        viper.GetString("rabbitmq.queue.manifest-res"),
	}
	log.Infof("Manifest response: status=%s manifest=%s report=%s", res.Status, res.ManifestNumber, res.ReportFilename)

	marshal, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	return rabbit.Publish(rbmq, string(marshal))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".mguard.yaml", "config file (default is .mguard.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".mguard" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mguard")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
	initLogging()
}

func initLogging() {
	base := viper.GetString("log.log-base")
	if base == "" {
		logging.InitLog("", viper.GetString("log.level"))
		return
	}
	path, _ := os.Executable()
	_, exec := filepath.Split(path)
	logging.InitLog(fmt.Sprintf("%s/%s.log", base, exec), viper.GetString("log.level"))
}
