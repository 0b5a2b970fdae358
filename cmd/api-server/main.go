package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/protomem/bizcard-pass/assets"
	"github.com/protomem/bizcard-pass/internal/database"
	"github.com/protomem/bizcard-pass/internal/env"
	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/metrics"
	"github.com/protomem/bizcard-pass/internal/pass"
	"github.com/protomem/bizcard-pass/internal/service"
	"github.com/protomem/bizcard-pass/internal/version"
)

var (
	_cfgFile     = flag.String("cfg", "", "path to config file")
	_showVersion = flag.Bool("version", false, "display version and exit")
)

func main() {
	flag.Parse()

	var level slog.LevelVar
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))

	err := run(logger, &level)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

type application struct {
	config   config
	db       *database.DB
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	catalog  *i18n.Catalog
	issuer   *service.Issuer
	places   *service.Places
}

func run(logger *slog.Logger, level *slog.LevelVar) error {
	if *_showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	if *_cfgFile != "" {
		err := env.Load(*_cfgFile)
		if err != nil {
			return err
		}
	}

	cfg := loadConfig()
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	level.Set(cfg.slogLevel())

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	catalog, err := i18n.Load()
	if err != nil {
		return err
	}

	renderer, err := newRenderer(logger, cfg, location)
	if err != nil {
		return err
	}

	db, err := database.New(logger, cfg.DB.DSN, cfg.DB.Automigrate)
	if err != nil {
		return err
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	recorder := service.NewRecorder(logger, database.NewSubmissionDAO(logger, db))

	app := &application{
		config:   cfg,
		db:       db,
		logger:   logger,
		registry: registry,
		metrics:  m,
		catalog:  catalog,
		issuer:   service.NewIssuer(logger, recorder, renderer, catalog, m, location),
		places: service.NewPlaces(logger,
			database.NewDefaultPlaceDAO(logger, db), m,
			cfg.AdminPassword, location),
	}

	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD is not set, default place writes are disabled")
	}

	return app.serveHTTP()
}

func newRenderer(logger *slog.Logger, cfg config, location *time.Location) (*pass.Renderer, error) {
	var images fs.FS
	if cfg.Pass.AssetsDir != "" {
		images = os.DirFS(cfg.Pass.AssetsDir)
	} else {
		sub, err := fs.Sub(assets.EmbeddedFiles, "images")
		if err != nil {
			return nil, err
		}
		images = sub
	}

	passAssets, err := pass.LoadAssets(images)
	if err != nil {
		return nil, err
	}

	var signer pass.Signer
	if cfg.passCredentialsSet() {
		creds, err := decodeCredentials(cfg)
		if err != nil {
			return nil, err
		}

		pkcs7Signer, err := pass.NewPKCS7Signer(creds)
		if err != nil {
			return nil, err
		}
		signer = pkcs7Signer
	} else {
		logger.Warn("pass signing credentials are not set, pass requests will fail")
	}

	return pass.NewRenderer(pass.Config{
		PassTypeIdentifier: cfg.Pass.TypeIdentifier,
		TeamIdentifier:     cfg.Pass.TeamIdentifier,
		Location:           location,
		Profile: pass.Profile{
			LogoText:  cfg.Card.LogoText,
			Phone:     cfg.Card.Phone,
			Email:     cfg.Card.Email,
			Homepage:  cfg.Card.Homepage,
			Linkedin:  cfg.Card.Linkedin,
			Instagram: cfg.Card.Instagram,
			Kakao:     cfg.Card.Kakao,
		},
	}, passAssets, signer), nil
}

func decodeCredentials(cfg config) (pass.Credentials, error) {
	cert, err := pass.DecodePEM(cfg.Pass.CertificateBase64, pass.BlockCertificate)
	if err != nil {
		return pass.Credentials{}, fmt.Errorf("PASS_CERTIFICATE_PEM_BASE64: %w", err)
	}

	key, err := pass.DecodePEM(cfg.Pass.KeyBase64, pass.BlockPrivateKey)
	if err != nil {
		return pass.Credentials{}, fmt.Errorf("PASS_KEY_PEM_BASE64: %w", err)
	}

	wwdr, err := pass.DecodePEM(cfg.Pass.WWDRBase64, pass.BlockCertificate)
	if err != nil {
		return pass.Credentials{}, fmt.Errorf("WWDR_CERTIFICATE_PEM_BASE64: %w", err)
	}

	return pass.Credentials{
		Certificate:   cert,
		PrivateKey:    key,
		KeyPassphrase: cfg.Pass.KeyPassphrase,
		WWDR:          wwdr,
	}, nil
}
