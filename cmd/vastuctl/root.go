package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dalemusser/vastusite/internal/apiclient"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// envAPIURL overrides the config file's API root.
const envAPIURL = "VASTU_API_URL"

// cli carries the persistent flags and the state built from them.
type cli struct {
	apiURL     string
	configPath string
	envFile    string
	verbose    bool

	cfg    *fileConfig
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "vastuctl",
		Short:         "Manage site content through the JSON API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "API root, e.g. https://example.com/api (env "+envAPIURL+")")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/vastuctl/config.yaml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file read before flags are resolved")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newListCmd(c),
		newGetCmd(c),
		newCreateCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
	)
	return root
}

func (c *cli) setup() error {
	if c.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		c.logger = l
	}

	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if c.configPath == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return err
		}
		c.configPath = p
	}
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.logger.Debug("config loaded",
		zap.String("path", c.configPath),
		zap.Bool("has_token", cfg.Token != ""))
	return nil
}

// baseURL picks the API root: flag, then environment, then config file.
func (c *cli) baseURL() string {
	return firstNonEmpty(c.apiURL, os.Getenv(envAPIURL), c.cfg.APIURL, apiclient.DefaultBaseURL)
}

func (c *cli) client() *apiclient.Client {
	base := c.baseURL()
	token := c.cfg.Token
	if c.cfg.tokenExpired(time.Now()) {
		c.logger.Debug("stored token has expired")
		token = ""
	}
	c.logger.Debug("using api", zap.String("base_url", base))
	return apiclient.New(base, apiclient.WithToken(token))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
