package main

import (
	"fmt"
	"time"

	"baggage/internal/core/application/usecases/queries"
	"baggage/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <baggage-id|tracking-code>",
		Short: "Print the status timeline of a bag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := baggageQuery(args[0])
			if err != nil {
				return err
			}

			app, err := ctx.compositionRoot()
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			view, err := app.CreateGetBaggageQueryHandler().Handle(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s  %s -> %s  [%s]\n",
				view.TrackingCode, view.PassengerName, view.FlightNumber, view.Destination, view.Status.Display())
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Timestamp", "Status", "Actor", "Location", "Notes"},
				timelineRows(view.Timeline),
			))
			return nil
		},
	}
}

// baggageQuery accepts either a bag id or a tracking code.
func baggageQuery(arg string) (queries.GetBaggageQuery, error) {
	if id, err := kernel.UUIDFromString(arg); err == nil {
		return queries.NewGetBaggageByIDQuery(id)
	}
	return queries.NewGetBaggageByTrackingCodeQuery(arg)
}

func timelineRows(events []queries.StatusEventView) [][]string {
	rows := make([][]string, 0, len(events))
	for i, e := range events {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			e.Timestamp.Local().Format(time.DateTime),
			e.Status.Display(),
			e.ActorName,
			e.Location,
			e.Notes,
		})
	}
	return rows
}
