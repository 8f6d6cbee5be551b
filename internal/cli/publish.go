package cli

import (
	"fmt"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/device"
	domainkafka "github.com/NordCoder/Runboard/internal/domain/kafka"
	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/NordCoder/Runboard/internal/repository/kafka"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func kafkaEvents(brokers []string, topic string) (domainkafka.RunEvents, func() error) {
	p := kafka.NewProducer(brokers, topic)
	return kafka.NewRunEventsKafka(p), p.Close
}

func newPublishCmd(a *app) *cobra.Command {
	var (
		brokers     []string
		topic       string
		ensureTopic bool
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Replay the source runs into Kafka as run results",
		Long: `Publish every run of the selected source, with its device and steps, as a
run result event. Point run-ingestor at the same topic to load them into postgres.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := a.openSource(ctx)
			if err != nil {
				return err
			}
			if ensureTopic {
				if err := kafka.EnsureTopic(ctx, brokers, kafka.TopicSpec{Name: topic, MaxWait: 10 * time.Second}, a.log); err != nil {
					return fmt.Errorf("ensure topic: %w", err)
				}
			}

			runs, err := src.ListRuns(ctx)
			if err != nil {
				return err
			}
			devices, err := src.ListDevices(ctx)
			if err != nil {
				return err
			}
			byName := make(map[string]device.Device, len(devices))
			for _, d := range devices {
				byName[d.Name] = d
			}

			events, closeEvents := a.newEvents(brokers, topic)
			defer func() { _ = closeEvents() }()

			sent := 0
			for _, r := range runs {
				if limit > 0 && sent >= limit {
					break
				}
				steps, err := src.ListSteps(ctx, r.ID)
				if err != nil {
					return err
				}
				res := run.Result{Run: r, Steps: steps}
				if d, ok := byName[r.Device]; ok {
					res.Device = &d
				}
				if err := events.PublishRunResult(ctx, res); err != nil {
					return fmt.Errorf("publish %s: %w", r.ID, err)
				}
				a.log.Debug("published", zap.String("run_id", r.ID))
				sent++
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "published %d runs to %s\n", sent, topic)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringSliceVar(&brokers, "brokers", []string{"localhost:9094"}, "kafka bootstrap brokers")
	fs.StringVar(&topic, "topic", "runboard.runs.result", "run result topic")
	fs.BoolVar(&ensureTopic, "ensure-topic", false, "create the topic first")
	fs.IntVar(&limit, "limit", 0, "publish at most this many runs (0 = all)")
	return cmd
}
