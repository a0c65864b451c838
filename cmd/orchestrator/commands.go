package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/database"
	"github.com/vfg2006/campaign-orchestrator/internal/api"
	"github.com/vfg2006/campaign-orchestrator/internal/api/handler"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/authenticating"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	cutoverPrefix string
	tokenOperator string
	tokenRole     string
	tokenTTL      time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia o agendador de campanhas e a API administrativa",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		campaignRuns := a.campaignRuns()
		if err := campaignRuns.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar o agendador de campanhas")
			return err
		}

		server, err := api.New(cfg, authenticating.NewService(cfg), &handler.RunServices{
			Campaigns:     campaignRuns,
			Upload:        a.uploader(),
			Activation:    a.activator(),
			Heartbeats:    a.recorder,
			CutoverPrefix: cfg.Activation.NamePrefix,
		})
		if err != nil {
			return err
		}

		return server.Run(ctx)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa o dispatcher uma única vez sobre todas as contas",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.campaignRuns().RunOnce(ctx)
		if err != nil {
			return err
		}

		if err := printJSON(cmd, report); err != nil {
			return err
		}
		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("run %s: %d conta(s) com erro: %v", report.RunID, len(failed), failed)
		}
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Envia campanhas, grupos de anúncios e anúncios em massa",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.uploader().RunUploadPipeline(ctx)
	},
}

var cutoverCmd = &cobra.Command{
	Use:   "cutover",
	Short: "Pausa os anúncios ativos e ativa os pausados com o prefixo informado",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := cutoverPrefix
		if prefix == "" {
			prefix = cfg.Activation.NamePrefix
		}
		if prefix == "" {
			return fmt.Errorf("cutover: informe --prefix ou ACTIVATION_NAME_PREFIX")
		}

		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.activator().Cutover(ctx, prefix)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica as migrações da tabela de trabalho",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.Migrate(cfg.Database)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <arquivo>",
	Short: "Acrescenta linhas à tabela de trabalho a partir de um arquivo JSON ou CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readRowsFile(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		for i, values := range rows {
			index, err := a.rows.Insert(ctx, values)
			if err != nil {
				return fmt.Errorf("import: linha %d: %w", i+1, err)
			}
			logrus.WithFields(logrus.Fields{
				"row": index,
				"id":  values[0],
			}).Debug("Linha importada")
		}

		logrus.WithField("rows", len(rows)).Info("Importação concluída")
		return a.rows.Flush(ctx)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token JWT para a API administrativa",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := authenticating.NewService(cfg).IssueToken(tokenOperator, tokenRole, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	cutoverCmd.Flags().StringVar(&cutoverPrefix, "prefix", "", "prefixo dos anúncios pausados que serão ativados")

	tokenCmd.Flags().StringVar(&tokenOperator, "operator", "", "identificação de quem usará o token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", domain.RoleAdmin, "papel gravado no token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "validade do token")
	_ = tokenCmd.MarkFlagRequired("operator")
}

// signalContext cancela o contexto em SIGINT ou SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
