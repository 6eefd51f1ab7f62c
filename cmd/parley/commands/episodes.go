package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/parleylab/parley/pkg/cli"
	"github.com/parleylab/parley/pkg/episode"
	"github.com/parleylab/parley/pkg/export"
)

var episodesFlags struct {
	data string

	output string
	query  string

	format   string
	out      string
	s3Bucket string
	s3Prefix string
	s3Region string
}

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Inspect stored episodes",
}

var episodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded episodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openEpisodeStore()
		if err != nil {
			return err
		}
		defer store.Close()

		metas, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(cli.RenderEpisodeList(cli.NewStyles(cli.DefaultTheme), metas))
		return nil
	},
}

var episodesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an episode transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openEpisodeStore()
		if err != nil {
			return err
		}
		defer store.Close()

		meta, records, err := loadEpisode(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}

		if episodesFlags.query != "" {
			return runQuery(export.Transcript{Episode: meta, Records: records}, episodesFlags.query)
		}
		switch episodesFlags.output {
		case "":
			fmt.Print(cli.RenderTranscript(cli.NewStyles(cli.DefaultTheme), meta, records))
			return nil
		default:
			return cli.Output(export.Transcript{Episode: meta, Records: records}, cli.OutputOptions{
				Format: cli.OutputFormat(episodesFlags.output),
			})
		}
	},
}

var episodesExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export an episode transcript to disk or S3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openEpisodeStore()
		if err != nil {
			return err
		}
		defer store.Close()

		meta, records, err := loadEpisode(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}

		sink, err := exportSink()
		if err != nil {
			return err
		}
		format := export.Format(episodesFlags.format)
		path := export.Filename(meta, format)
		if err := export.Write(cmd.Context(), sink, path, meta, records, format); err != nil {
			return err
		}
		cli.PrintSuccess("exported %s", path)
		return nil
	},
}

func init() {
	episodesCmd.PersistentFlags().StringVar(&episodesFlags.data, "data", "", "episode database directory (default: config dir)")

	episodesShowCmd.Flags().StringVarP(&episodesFlags.output, "output", "o", "", "output format: json or yaml (default: styled transcript)")
	episodesShowCmd.Flags().StringVarP(&episodesFlags.query, "query", "q", "", "jq expression applied to the transcript JSON")

	episodesExportCmd.Flags().StringVar(&episodesFlags.format, "format", "text", "transcript format: text or json")
	episodesExportCmd.Flags().StringVar(&episodesFlags.out, "out", ".", "destination directory for local export")
	episodesExportCmd.Flags().StringVar(&episodesFlags.s3Bucket, "s3-bucket", "", "export to this S3 bucket instead of local disk")
	episodesExportCmd.Flags().StringVar(&episodesFlags.s3Prefix, "s3-prefix", "", "key prefix for S3 export")
	episodesExportCmd.Flags().StringVar(&episodesFlags.s3Region, "s3-region", "us-east-1", "S3 region")

	episodesCmd.AddCommand(episodesListCmd)
	episodesCmd.AddCommand(episodesShowCmd)
	episodesCmd.AddCommand(episodesExportCmd)
	rootCmd.AddCommand(episodesCmd)
}

func openEpisodeStore() (*episode.Store, error) {
	dir := episodesFlags.data
	if dir == "" {
		cfg, err := GetConfig()
		if err != nil {
			return nil, err
		}
		dir = cfg.EpisodesDir()
	}
	return episode.Open(episode.Options{Dir: dir})
}

func loadEpisode(ctx context.Context, store *episode.Store, id string) (episode.Meta, []episode.Record, error) {
	meta, err := store.Get(ctx, id)
	if err != nil {
		return episode.Meta{}, nil, err
	}
	records, err := store.Entries(ctx, id)
	if err != nil {
		return episode.Meta{}, nil, err
	}
	return meta, records, nil
}

func exportSink() (export.Sink, error) {
	if episodesFlags.s3Bucket == "" {
		return export.NewLocalSink(episodesFlags.out)
	}
	client := s3.New(s3.Options{
		Region: episodesFlags.s3Region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			}, nil
		}),
	})
	return export.NewS3Sink(client, episodesFlags.s3Bucket, episodesFlags.s3Prefix), nil
}

// runQuery applies a jq expression to the transcript and prints each
// result as JSON.
func runQuery(transcript export.Transcript, expr string) error {
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid jq expression %q: %w", expr, err)
	}

	// gojq operates on plain JSON values.
	data, err := json.Marshal(transcript)
	if err != nil {
		return err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return err
	}

	iter := query.Run(input)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := v.(error); ok {
			return fmt.Errorf("jq: %w", err)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
}
