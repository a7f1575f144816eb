package block_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/iteration"
)

const advancedTextJSON = `{
  "type": "advanced_text",
  "data": {
    "value": {
      "content": "Hello {{ user.name }}",
      "condition": {
        "enabled": true,
        "symbol": "and",
        "groups": [{"symbol": "or", "groups": [{"left": "user.vip", "operator": "truthy"}]}]
      },
      "iteration": {"enabled": true, "dataSource": "orders", "itemName": "order", "limit": 3, "mockQuantity": 2}
    },
    "hidden": false
  },
  "attributes": {"padding": "10px 25px"},
  "children": []
}`

func TestNode_UnmarshalEditorFormat(t *testing.T) {
	t.Parallel()

	var node block.Node
	if err := json.Unmarshal([]byte(advancedTextJSON), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if node.Type != block.TypeAdvancedText {
		t.Fatalf("type = %q", node.Type)
	}
	if diff := cmp.Diff(block.Value(block.ContentValue{Content: block.String("Hello {{ user.name }}")}), node.Data.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	wantCondition := &condition.Expr{
		Enabled: true,
		Symbol:  condition.SymbolAnd,
		Groups: []condition.Group{{
			Symbol: condition.SymbolOr,
			Groups: []condition.Item{{Left: "user.vip", Operator: condition.OperatorTruthy}},
		}},
	}
	if diff := cmp.Diff(wantCondition, node.Data.Directives.Condition); diff != "" {
		t.Fatalf("condition mismatch (-want +got):\n%s", diff)
	}
	wantIteration := &iteration.Spec{Enabled: true, DataSource: "orders", ItemName: "order", Limit: 3, MockQuantity: 2}
	if diff := cmp.Diff(wantIteration, node.Data.Directives.Iteration); diff != "" {
		t.Fatalf("iteration mismatch (-want +got):\n%s", diff)
	}
	if node.Data.IsHidden() {
		t.Fatalf("expected visible node")
	}
}

func TestNode_RoundTripKeepsDirectivesInsideValue(t *testing.T) {
	t.Parallel()

	var node block.Node
	if err := json.Unmarshal([]byte(advancedTextJSON), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	raw, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}
	value := generic["data"].(map[string]any)["value"].(map[string]any)
	for _, key := range []string{"content", "condition", "iteration"} {
		if _, ok := value[key]; !ok {
			t.Fatalf("expected %q inside data.value, got %v", key, value)
		}
	}

	var again block.Node
	if err := json.Unmarshal(raw, &again); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if diff := cmp.Diff(node, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_UnknownTypeKeepsOpaqueValue(t *testing.T) {
	t.Parallel()

	raw := `{"type":"countdown","data":{"value":{"until":"2026-12-24","i18n":{"type":"i18n","enabled":true}}},"attributes":{},"children":[]}`

	var node block.Node
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(block.Value(block.OpaqueValue{"until": "2026-12-24"}), node.Data.Value); diff != "" {
		t.Fatalf("opaque mismatch (-want +got):\n%s", diff)
	}
	if node.Data.Directives.I18n == nil || node.Data.Directives.I18n.Type != block.I18nPlain {
		t.Fatalf("expected i18n directive, got %+v", node.Data.Directives.I18n)
	}
}

func TestNode_MissingValueUsesZeroValue(t *testing.T) {
	t.Parallel()

	var node block.Node
	if err := json.Unmarshal([]byte(`{"type":"section","data":{}}`), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := node.Data.Value.(block.SectionValue); !ok {
		t.Fatalf("expected SectionValue, got %T", node.Data.Value)
	}
	if !node.Data.Directives.Empty() {
		t.Fatalf("expected no directives")
	}
}
