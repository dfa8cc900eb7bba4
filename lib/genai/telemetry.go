package genai

import "outreach-backend/lib/telemetry"

var tracer = telemetry.Tracer("outreach.lib.genai")
