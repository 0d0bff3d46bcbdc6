package triple

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTripleJSONRoundTrip(t *testing.T) {
	cases := []Triple{
		T("sys", "hasPurpose", EntityID("PurposeCreditScoring")),
		T("sys", "hasLabel", Str("true")),
		T("sys", "notificationDeadlineDays", Int(15)),
		T("sys", "isAISystem", Bool(true)),
	}

	for _, tc := range cases {
		data, err := json.Marshal(tc)
		require.NoError(t, err)

		var back Triple
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, tc.Key(), back.Key())
	}
}

func TestTripleJSONKindsAreExplicit(t *testing.T) {
	data, err := json.Marshal(T("sys", "hasLabel", Str("x")))
	require.NoError(t, err)
	require.JSONEq(t, `{"subject":"sys","predicate":"hasLabel","object":{"kind":"string","value":"x"}}`, string(data))
}

func TestDecodeObjectRejectsUnknownKind(t *testing.T) {
	_, err := DecodeObject("float", []byte(`1.5`))
	require.Error(t, err)

	_, err = DecodeObject("int", []byte(`"not-an-int"`))
	require.Error(t, err)
}
