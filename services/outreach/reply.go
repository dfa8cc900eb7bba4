package outreach

import (
	"encoding/json"
	"fmt"
)

// EmailOption is one drafted outreach email from the model.
type EmailOption struct {
	Angle   string `json:"angle"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// GenerationReply is the structure the model is prompted to answer
// with.
type GenerationReply struct {
	AnalysisSummary      string        `json:"analysis_summary"`
	OpportunityDiagnosis string        `json:"opportunity_diagnosis"`
	Emails               []EmailOption `json:"emails"`
}

// only the first three drafts make it into the report
const maxEmailOptions = 3

// DecodeReply maps the extracted json object onto the expected reply
// shape. Unknown keys are ignored, a reply without drafted emails is
// an error.
func DecodeReply(data map[string]any) (GenerationReply, error) {
	serialized, err := json.Marshal(data)
	if err != nil {
		return GenerationReply{}, err
	}
	var reply GenerationReply
	err = json.Unmarshal(serialized, &reply)
	if err != nil {
		return GenerationReply{}, fmt.Errorf("reply does not match expected shape: %w", err)
	}
	if len(reply.Emails) == 0 {
		return GenerationReply{}, fmt.Errorf("reply contains no drafted emails")
	}
	if len(reply.Emails) > maxEmailOptions {
		reply.Emails = reply.Emails[:maxEmailOptions]
	}
	return reply, nil
}
