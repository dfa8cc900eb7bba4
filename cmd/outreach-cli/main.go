package main

import (
	"context"
	"log/slog"

	"outreach-backend/cmd/outreach-cli/commands"
	"outreach-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()

	telemetry.InitSlog(false)
	t, err := telemetry.SetupFromEnv(ctx, "outreach-cli")
	if err != nil {
		slog.Error("failed to initialize telemetry", "err", err)
	}
	defer t.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
