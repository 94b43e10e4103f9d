package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"docbench/engine/internal/appdirs"
	"docbench/engine/internal/envfile"
	"docbench/engine/internal/errinfo"
	"docbench/engine/internal/logging"
	"docbench/engine/internal/rpc"
	"docbench/engine/internal/service"
	"docbench/engine/internal/settings"
	"docbench/engine/internal/tools"
)

const (
	version    = "0.1.0"
	apiVersion = "1"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "docbench-engine",
		Short:   "Word document editing engine for calling agents",
		Long:    "docbench-engine mutates .docx files on behalf of calling agents:\ncross-run search/replace, section and anchor-block rewriting, and\nparagraph-level edits, exposed over MCP or line-delimited JSON-RPC.",
		Version: version,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(newCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(extractCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads .env, resolves the data dir and builds the debug-gated
// logger and service.
func bootstrap() (*service.Service, *slog.Logger, func(), error) {
	envResult := envfile.Load()
	debug := envfile.Bool("DOCBENCH_DEBUG")
	dataDir, err := appdirs.DataDir()
	if err != nil {
		return nil, nil, nil, err
	}
	logSetup, logErr := logging.NewFileLogger(dataDir, debug)
	logger := logSetup.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With("component", "engine")
	if logSetup.Enabled {
		logger.Info("engine.logging_enabled", "path", logSetup.Path)
	}
	if envResult.Loaded {
		logger.Debug("engine.env_loaded", "path", envResult.Path, "keys", envResult.Keys)
	}
	if envResult.Err != nil {
		logger.Warn("engine.env_load_failed", "path", envResult.Path, "error", envResult.Err.Error())
	}
	if logErr != nil {
		logger.Warn("engine.log_setup_failed", "error", logErr.Error())
	}

	store := settings.NewStore(filepath.Join(dataDir, "settings.json"))
	svc := service.New(logger, store, dataDir)
	cleanup := func() {
		if logSetup.Close != nil {
			_ = logSetup.Close()
		}
	}
	return svc, logger, cleanup, nil
}

func serveCmd() *cobra.Command {
	var jsonRPC bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool surface over stdio (MCP by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, logger, cleanup, err := bootstrap()
			if err != nil {
				log.Fatalf("engine init failed: %v", err)
			}
			defer cleanup()

			if jsonRPC {
				srv := rpc.NewServer(apiVersion, os.Stdin, os.Stdout, logger)
				tools.RegisterRPC(srv, svc)
				return srv.Serve(context.Background())
			}

			srv := server.NewMCPServer("docbench-engine", version)
			tools.RegisterMCP(srv, svc)
			return server.ServeStdio(srv)
		},
	}
	cmd.Flags().BoolVar(&jsonRPC, "jsonrpc", false, "serve line-delimited JSON-RPC 2.0 instead of MCP")
	return cmd
}

func newCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "new <path>",
		Short: "Create a blank document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()
			return runOperation(svc.DocumentCreate, map[string]any{
				"path": args[0], "title": title,
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "document title")
	return cmd
}

func infoCmd() *cobra.Command {
	var outline bool
	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Print document metadata and counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()
			return runOperation(svc.GetDocumentInfo, map[string]any{
				"path": args[0], "include_outline": outline,
			})
		},
	}
	cmd.Flags().BoolVar(&outline, "outline", false, "include the heading outline")
	return cmd
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <path>",
		Short: "Print the document text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()
			result, errInfo := svc.GetDocumentText(context.Background(), mustMarshal(map[string]any{"path": args[0]}))
			if errInfo != nil {
				return operationError(errInfo)
			}
			fmt.Println(result.(map[string]any)["text"])
			return nil
		},
	}
}

// runOperation invokes a service method and prints its result as indented JSON.
func runOperation(call func(context.Context, json.RawMessage) (any, *errinfo.ErrorInfo), params map[string]any) error {
	result, errInfo := call(context.Background(), mustMarshal(params))
	if errInfo != nil {
		return operationError(errInfo)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func operationError(errInfo *errinfo.ErrorInfo) error {
	data, err := json.Marshal(errInfo)
	if err != nil {
		return fmt.Errorf("operation failed: %s", errInfo.ErrorCode)
	}
	return fmt.Errorf("operation failed: %s", data)
}

func mustMarshal(v map[string]any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
