package domain

// RawPayload is an untyped upstream JSON document. Field names and nesting
// vary by source (price/close/Close/c, historical_data vs gold_price.data);
// the normalize package maps it to canonical records.
type RawPayload map[string]any

// DateLayout is the calendar-day format used across all upstream artifacts.
const DateLayout = "2006-01-02"
