package flow

import "testing"

func TestBlockType_Kind(t *testing.T) {
	tests := []struct {
		tag  BlockType
		want Kind
	}{
		{"Start", KindEntry},
		{"Code", KindCode},
		{"OnlineLLM", KindOnlineLLM},
		{"HttpRequest", KindHTTPRequest},
		{"SqlCall", KindSQLCall},
		{"", KindOther},
		{"code", KindOther},
		{"SomethingNew", KindOther},
	}
	for _, tt := range tests {
		if got := tt.tag.Kind(); got != tt.want {
			t.Errorf("BlockType(%q).Kind() = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestKinds_TagsRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		if got := k.Tag().Kind(); got != k {
			t.Errorf("%v.Tag().Kind() = %v", k, got)
		}
	}
	if got := len(Kinds()); got != int(kindCount)-1 {
		t.Errorf("len(Kinds()) = %d, want %d", got, kindCount-1)
	}
}

func TestKind_Has(t *testing.T) {
	if !KindEntry.Has(CapEntry) {
		t.Error("KindEntry should carry CapEntry")
	}
	if KindCode.Has(CapEntry) {
		t.Error("KindCode should not carry CapEntry")
	}
	if !KindLoop.Has(CapContainer) {
		t.Error("KindLoop should carry CapContainer")
	}
	if KindOther.Has(CapIndependent) {
		t.Error("KindOther should carry no capabilities")
	}
	if Kind(999).Has(CapEntry) {
		t.Error("out of range kind should carry no capabilities")
	}
}

func TestCanRunIndependently(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"code block", Node{Data: NodeData{Type: "Code"}}, true},
		{"sub module", Node{Data: NodeData{Type: "SubModule"}}, true},
		{"custom script", Node{Data: NodeData{Type: "CustomScript"}}, true},
		{"llm block", Node{Data: NodeData{Type: "OnlineLLM"}}, false},
		{"standalone mode", Node{Data: NodeData{Type: "OnlineLLM", Extra: Metadata{"execution_mode": "standalone"}}}, true},
		{"independent mode", Node{Data: NodeData{Extra: Metadata{"execution_mode": "Independent"}}}, true},
		{"pipeline mode", Node{Data: NodeData{Extra: Metadata{"execution_mode": "pipeline"}}}, false},
		{"single run flag", Node{Data: NodeData{Extra: Metadata{"config__can_run_by_single": true}}}, true},
		{"single run flag off", Node{Data: NodeData{Extra: Metadata{"config__can_run_by_single": false}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRunIndependently(tt.node); got != tt.want {
				t.Errorf("CanRunIndependently() = %v, want %v", got, tt.want)
			}
		})
	}
}
