package accqsure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectionsCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Release audit", body["name"])
		assert.Equal(t, InspectionTypePreliminary, body["type"])
		assert.Equal(t, "dt-1", body["document_type_id"])
		assert.Equal(t, "SOP-001", body["doc_id"])
		assert.NotContains(t, body, "manifest_id")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"entity_id": "i-1", "name": "Release audit", "status": "created"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ins, err := client.Inspections.Create(context.Background(), CreateInspectionInput{
		Name:           "Release audit",
		Type:           InspectionTypePreliminary,
		DocumentTypeID: "dt-1",
		DocID:          "SOP-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "i-1", ins.EntityID)
	assert.Equal(t, "created", ins.Status)
}

func TestInspectionRun(t *testing.T) {
	stubSleep(t)

	var polls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/inspection/i-1/run":
			require.Equal(t, http.MethodPost, r.Method)
			fmt.Fprintf(w, `{"task_id": "task-9"}`)
		case "/v1/task/task-9":
			polls++
			if polls < 2 {
				fmt.Fprintf(w, `{"task_id": "task-9", "status": "running"}`)
				return
			}
			fmt.Fprintf(w, `{"task_id": "task-9", "status": "finished", "result": {"compliant": true}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ins := &Inspection{client: client, EntityID: "i-1"}
	result, err := ins.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, polls)

	payload, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, payload["compliant"])
}

func TestInspectionRunMissingTaskID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ins := &Inspection{client: client, EntityID: "i-1"}
	_, err := ins.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing task_id")
}

func TestInspectionAssetGuards(t *testing.T) {
	client := newTestClient(t, "http://unreachable.invalid")

	ins := &Inspection{client: client, EntityID: "i-1"}

	var specErr *SpecificationError
	_, err := ins.GetDocContents(context.Background())
	require.ErrorAs(t, err, &specErr)
	assert.Equal(t, "doc_content_id", specErr.Attribute)

	_, err = ins.GetContents(context.Background())
	require.ErrorAs(t, err, &specErr)
	assert.Equal(t, "content_id", specErr.Attribute)

	_, err = ins.DownloadReport(context.Background())
	require.ErrorAs(t, err, &specErr)
	assert.Equal(t, "report_content_id", specErr.Attribute)
}

func TestInspectionDownloadReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/inspection/i-1/asset/report-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ins := &Inspection{client: client, EntityID: "i-1", ReportContentID: "report-1"}
	report, err := ins.DownloadReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), report)
}

func TestInspectionListChecksFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/inspection/i-1/check", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("compliant"))
		assert.Equal(t, "4.2", r.URL.Query().Get("section"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"results": [
				{
					"entity_id": "c-1",
					"inspection_id": "i-1",
					"name": "Approval",
					"compliant": false,
					"rationale": "No approval signature found"
				}
			],
			"last_key": ""
		}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ins := &Inspection{client: client, EntityID: "i-1"}
	compliant := false
	checks, _, err := ins.ListChecks(context.Background(), &compliant, "4.2", 0, "")
	require.NoError(t, err)
	require.Len(t, checks, 1)
	require.NotNil(t, checks[0].Compliant)
	assert.False(t, *checks[0].Compliant)
	assert.Equal(t, "No approval signature found", checks[0].Rationale)
}

func TestInspectionCheckUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/inspection/i-1/check/c-1", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["compliant"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"entity_id": "c-1", "inspection_id": "i-1", "compliant": true}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	check := &InspectionCheck{client: client, EntityID: "c-1", InspectionID: "i-1"}
	err := check.Update(context.Background(), map[string]interface{}{"compliant": true})
	require.NoError(t, err)
	require.NotNil(t, check.Compliant)
	assert.True(t, *check.Compliant)
}
