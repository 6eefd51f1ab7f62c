package agent

import "testing"

func TestRoute(t *testing.T) {
	const out = "env/Ava/output"

	cases := []struct {
		kind      Kind
		topic     string
		published bool
	}{
		{KindSpeak, out, true},
		{KindBrowse, RuntimeTopic, true},
		{KindBrowseAction, RuntimeTopic, true},
		{KindWrite, RuntimeTopic, true},
		{KindRead, RuntimeTopic, true},
		{KindRun, RuntimeTopic, true},
		{KindNone, "", false},
		{KindThought, "", false},
		{KindLeave, "", false},
	}
	for _, tc := range cases {
		topic, ok := Route(&Action{AgentName: "Ava", Kind: tc.kind}, out)
		if ok != tc.published || topic != tc.topic {
			t.Errorf("Route(%s) = %q, %v; want %q, %v", tc.kind, topic, ok, tc.topic, tc.published)
		}
	}
}
