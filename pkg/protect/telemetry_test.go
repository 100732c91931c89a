package protect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adri-oss/adri-go/pkg/protect"
)

func TestGuard_SpansRecordPipelineOutcome(t *testing.T) {
	g, _ := newGuard(t)

	_, err := g.Run(context.Background(), goodOrders(t), protect.RunOptions{
		DataParam:    "orders",
		FunctionName: "process_orders",
		StandardDict: testStandard(),
		MinScore:     80,
		OnFailure:    protect.OnFailureRaise,
	}, noopFn)
	require.NoError(t, err)

	spans := g.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, "protect_function_call", spans[0].Name)

	var sawFunctionName, sawDecision bool
	for _, attr := range spans[0].Attributes {
		switch string(attr.Key) {
		case "adri.function_name":
			sawFunctionName = attr.Value.AsString() == "process_orders"
		case "adri.decision":
			sawDecision = attr.Value.AsString() == "ALLOWED"
		}
	}
	assert.True(t, sawFunctionName)
	assert.True(t, sawDecision)
}
