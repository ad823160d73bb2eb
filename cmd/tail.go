package cmd

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/bimmerbailey/kevinify/internal/output"
	"github.com/bimmerbailey/kevinify/internal/tail"
	"github.com/spf13/cobra"
)

var tailCmd = &cobra.Command{
	Use:   "tail [flags] <file>",
	Short: "Compress a file line by line as it grows",
	Long: `Print the last lines of a file compressed, then keep watching it and
compress every new line as it is written, similar to 'tail -f'.

Examples:
  kevinify tail chat.log
  kevinify tail --no-follow -n 50 transcript.txt
  kevinify tail --pattern "^user:" --keep-case chat.log
  kevinify tail --follow-rotate /var/log/prompts.log`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	addTailFlags(tailCmd)
	rootCmd.AddCommand(tailCmd)
}

func addTailFlags(cmd *cobra.Command) {
	addCompressFlags(cmd)
	cmd.Flags().StringP("pattern", "p", "", "only show lines matching regex pattern")
	cmd.Flags().IntP("lines", "n", 10, "number of initial lines to show")
	cmd.Flags().Bool("no-follow", false, "print last N lines and exit (don't follow)")
	cmd.Flags().Bool("follow-rotate", false, "follow through log rotations (continue when file is renamed/removed)")
}

func runTail(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	lines, _ := cmd.Flags().GetInt("lines")
	noFollow, _ := cmd.Flags().GetBool("no-follow")
	followRotate, _ := cmd.Flags().GetBool("follow-rotate")
	patternStr, _ := cmd.Flags().GetString("pattern")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %s", filePath)
	}

	var pattern *regexp.Regexp
	if patternStr != "" {
		pattern, err = regexp.Compile(patternStr)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	}

	opts := compressOptions(cmd, cfg)
	format := output.ParseFormat(cfg.Format)
	writer := output.New(cmd.OutOrStdout(), format)

	outputFunc := func(line tail.Line) error {
		if format == output.FormatJSON {
			return writer.WriteJSON(output.Result{
				Source: filePath,
				Mode:   "compress",
				Input:  line.Text,
				Output: line.Output,
			})
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), line.Output)
		return err
	}

	follower := tail.New(tail.Options{
		FilePath:     filePath,
		Lines:        lines,
		Follow:       !noFollow,
		FollowRotate: followRotate,
		Pattern:      pattern,
		Transform:    func(s string) string { return kevinify.Compress(s, &opts) },
		OutputFunc:   outputFunc,
		Logger:       logger,
	})

	err = follower.Run(commandContext(cmd))
	if errors.Is(err, tail.ErrFileRotated) {
		logger.Info("stopped following rotated file", "file", filePath)
		return nil
	}
	return err
}
