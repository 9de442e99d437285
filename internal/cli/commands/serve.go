package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/innobrain/onoffice-structure/internal/server"
)

func newServeCommand(g *globalOptions) *cobra.Command {
	var (
		input string
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the field configuration over HTTP",
		Long: `Load the field configuration once and serve it read-only over HTTP.

Routes:
  GET /healthz
  GET /modules
  GET /modules/{module}?format=rules&where.vermarktungsart=miete
  GET /modules/{module}/fields/{field}?format=jsonschema

Examples:
  onoffice-structure serve --addr :8080
  onoffice-structure serve --input fields.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			modules, err := g.loadModules(cmd, e, input, nil)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = e.cfg.Server.Addr
			}
			srv, err := server.New(server.DefaultConfig(addr), server.NewHandler(modules, e.logger), e.logger)
			if err != nil {
				return err
			}

			e.logger.Info("serving field configuration", zap.Int("modules", modules.Len()), zap.String("addr", addr))
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Read a saved fields response instead of calling the API")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")

	return cmd
}
