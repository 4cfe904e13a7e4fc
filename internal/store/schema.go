package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const llmEventsTableName = "llm_request_events"

// Ledger column names.
const (
	colID           = "id"
	colRequestID    = "request_id"
	colTimestamp    = "timestamp"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
)

var llmEventsColumns = []*schema.Column{
	{Name: colID, Type: field.TypeInt, Increment: true},
	{Name: colRequestID, Type: field.TypeString},
	{Name: colTimestamp, Type: field.TypeTime},
	{Name: colProvider, Type: field.TypeString},
	{Name: colModel, Type: field.TypeString},
	{Name: colPurpose, Type: field.TypeString},
	{Name: colInputTokens, Type: field.TypeInt, Default: 0},
	{Name: colOutputTokens, Type: field.TypeInt, Default: 0},
	{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
	{Name: colSuccess, Type: field.TypeBool},
	{Name: colErrorMessage, Type: field.TypeString, Size: 2147483647, Default: ""},
	{Name: colRequestBody, Type: field.TypeString, Size: 2147483647, Default: ""},
	{Name: colResponseBody, Type: field.TypeString, Size: 2147483647, Default: ""},
}

var llmEventsTable = &schema.Table{
	Name:       llmEventsTableName,
	Columns:    llmEventsColumns,
	PrimaryKey: []*schema.Column{llmEventsColumns[0]},
	Indexes: []*schema.Index{
		{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventsColumns[2]}},
		{Name: "llmrequestevent_model", Columns: []*schema.Column{llmEventsColumns[4]}},
		{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
	},
}

var tables = []*schema.Table{llmEventsTable}

// llmEventsSelect lists the ledger columns in scan order.
var llmEventsSelect = []string{
	colID, colRequestID, colTimestamp, colProvider, colModel, colPurpose,
	colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
	colErrorMessage, colRequestBody, colResponseBody,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}
