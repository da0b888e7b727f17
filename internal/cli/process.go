package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/minute-tui/minute/internal/api"
	"github.com/minute-tui/minute/internal/export"
	"github.com/minute-tui/minute/internal/output"
	"github.com/minute-tui/minute/internal/pipeline"
)

// NewProcessCmd runs the full pipeline headlessly on one file.
func NewProcessCmd(deps *Dependencies) *cobra.Command {
	var (
		transcriptFile bool
		legacy         bool
		asJSON         bool
		docxPath       string
	)

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Upload, transcribe, and summarize one meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stderr)
			client := deps.Client
			ctx := cmd.Context()

			in := pipeline.Input{AudioPath: args[0]}
			if transcriptFile {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				in = pipeline.Input{Transcript: string(data)}
			}

			mode := pipeline.ModeEnhanced
			if legacy || !deps.Config.Enhanced {
				mode = pipeline.ModeLegacy
			}

			pipe := pipeline.New()
			if err := pipe.Begin(in, mode); err != nil {
				return err
			}

			if pipe.Step() == pipeline.StepUploading {
				formatter.Uploading(in.AudioPath)
				resp, err := client.UploadAudio(ctx, in.AudioPath)
				pipe.ApplyUpload(pipe.Generation(), resp, err)
				if err := stageErr(pipe); err != nil {
					return err
				}

				formatter.Transcribing()
				tr, err := client.TranscribeAudio(ctx, resp.MeetingID, resp.S3Path)
				pipe.ApplyTranscript(pipe.Generation(), tr, err)
				if err := stageErr(pipe); err != nil {
					return err
				}
			}

			if mode == pipeline.ModeEnhanced {
				if err := runEnhanced(ctx, client, pipe, formatter); err != nil {
					return err
				}
			} else {
				formatter.Summarizing("")
				resp, err := client.GenerateSummary(ctx, pipe.Transcript())
				pipe.ApplySummary(pipe.Generation(), resp, err)
				if err := stageErr(pipe); err != nil {
					return err
				}
				s := pipe.Summary()
				output.NewFormatter(os.Stdout).FlatSummary(s.TLDR, s.KeyPoints, s.Decisions, s.ActionItems)
			}

			if mode == pipeline.ModeEnhanced {
				resp, err := client.IngestMeeting(ctx, api.IngestRequest{
					Transcript: pipe.Transcript(),
					MeetingID:  pipe.MeetingID(),
				})
				if note := pipe.ApplyIngest(pipe.Generation(), resp, err); note != "" {
					formatter.Warning(note)
				} else {
					formatter.Ingested(resp.MeetingID, resp.Chunks)
				}
			}

			if s := pipe.Structure(); s != nil {
				if asJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					if err := enc.Encode(s); err != nil {
						return err
					}
				} else {
					output.NewFormatter(os.Stdout).Structure(s)
				}
				if docxPath != "" {
					if err := export.ToDocx(s, docxPath); err != nil {
						return err
					}
					formatter.Success("Exported " + docxPath)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&transcriptFile, "transcript", false, "treat the argument as a transcript text file")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "use the flat summary instead of hierarchical notes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the structure as JSON")
	cmd.Flags().StringVarP(&docxPath, "docx", "o", "", "also export the notes as a .docx file")

	return cmd
}

func runEnhanced(ctx context.Context, client *api.Client, pipe *pipeline.Pipeline, formatter *output.Formatter) error {
	est, err := client.EstimateProcessingTime(ctx, pipe.Transcript())
	pipe.ApplyEstimate(pipe.Generation(), est, err)
	formatter.Summarizing(pipe.Info().EstimatedLabel)

	resp, err := client.GenerateEnhancedSummary(ctx, api.EnhancedSummarizeRequest{Transcript: pipe.Transcript()})
	pipe.ApplyEnhancedSummary(pipe.Generation(), resp, err)
	return stageErr(pipe)
}

func stageErr(pipe *pipeline.Pipeline) error {
	if pipe.Step() == pipeline.StepError {
		return errors.New(pipe.Err())
	}
	return nil
}
