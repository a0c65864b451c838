package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-orchestrator/internal/config"
)

// cfg é carregada uma vez pelo PersistentPreRunE do comando raiz
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "orchestrator",
	Short: "Orquestrador de campanhas do Google Ads",
	Long: `Executa o laço de controle das linhas da tabela de trabalho por conta,
o upload em massa de campanhas e a troca de anúncios ativos.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogger()

		loaded, err := config.NewConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		// Define o nível de log com base na configuração
		logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
		if err != nil {
			logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
			logLevel = logrus.InfoLevel
		}
		logrus.SetLevel(logLevel)
		logrus.Debugf("Nível de log configurado para: %s", logLevel)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(cutoverCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
