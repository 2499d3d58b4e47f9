package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grahms/fieldweaver"
)

func newRunCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Read JSON records on stdin, augment them, write them to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return run(configPath, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "fieldweaver.yaml", "path to the field configuration file")
	return cmd
}

func run(configPath string, in io.Reader, out io.Writer, logger *zap.Logger) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	// $jobid must be stable for the whole run even when no scheduler set it.
	jobID := os.Getenv(fieldweaver.JobIDEnvVar)
	if jobID == "" {
		jobID = uuid.NewString()
		if err := os.Setenv(fieldweaver.JobIDEnvVar, jobID); err != nil {
			return err
		}
		logger.Info("generated job id", zap.String("job_id", jobID))
	}

	engine, err := fieldweaver.NewEngine(
		fieldweaver.MergeFieldSpecs(cfg.Fields, cfg.FieldsOverride),
		fieldweaver.MapSettings(cfg.Settings),
	)
	if err != nil {
		return err
	}

	spider := &fieldweaver.StaticSpider{
		Name:  cfg.Spider.Name,
		Attrs: cfg.Spider.Attrs,
		Sink: func(msg string) {
			logger.Warn(msg, zap.String("job_id", jobID))
		},
	}
	response := fieldweaver.StaticResponse(cfg.Response)

	enc := json.NewEncoder(out)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var processed, skipped, lineNo int
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var record fieldweaver.MapRecord
		if err := json.Unmarshal(line, &record); err != nil {
			skipped++
			logger.Warn("skipping undecodable record",
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		engine.Augment(record, response, spider)
		if err := enc.Encode(record); err != nil {
			return err
		}
		processed++
	}
	if err := sc.Err(); err != nil {
		return err
	}

	logger.Info("run complete",
		zap.String("job_id", jobID),
		zap.Int("records", processed),
		zap.Int("skipped", skipped))
	return nil
}
