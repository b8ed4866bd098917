package console

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/coresender/coresender-go/pkg/mail"
	"github.com/coresender/coresender-go/pkg/root"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchYAML = `auto_custom_id: true
messages:
  - from: "Gandalf The Grey <gandalf@middleearth.com>"
    to: ["Balrog <balrog.of.moria@example.com>"]
    subject: "Passage problems"
    body_text: "You shall not pass!"
    body_html: "<p>I'm sorry but you shall <strong>not pass!</strong></p>"
    track_opens: true
    track_clicks: true
    list_id: "no list"
    list_unsubscribe: "https://example.com/unsubscribe/abcd-1234"
  - from: "Saruman <saruman@middleearth.com>"
    to:
      - "Sauron <dark.lord@example.com>"
    subject: "Agenda for the next weeks"
    body_text: "Uruk-hais are ready my Lord, what are the orders?"
    custom_id: "1234-qwerty"
    reply_to: ["orthanc@middleearth.com"]
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI resets the package flag variables and runs the root command
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	accountID, apiKey, endpoint, logLevel = "", "", "", ""
	dryRun, traceRequests = false, false
	batchPath = ""
	sendInput = messageInput{}
	sendAutoID = false

	var out bytes.Buffer
	cmd := root.GetRoot()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
		cmd.SetArgs(nil)
	})

	err := cmd.Execute()
	return out.String(), err
}

func TestMessageInput_Build(t *testing.T) {
	in := messageInput{
		From:        "Jean-Luc Picard <jean.luc@example.com>",
		To:          []string{"Geordi La Forge <geordi@example.com>", "data@example.com"},
		Subject:     "I need engines",
		BodyText:    "Geordi, I need engines, now!",
		TrackOpens:  true,
		TrackClicks: true,
	}

	msg, err := in.build(false)
	require.NoError(t, err)
	assert.Equal(t, mail.NamedAddr("jean.luc@example.com", "Jean-Luc Picard"), msg.From())
	assert.Equal(t, []mail.Address{
		mail.NamedAddr("geordi@example.com", "Geordi La Forge"),
		mail.Addr("data@example.com"),
	}, msg.To())
	assert.Empty(t, msg.CustomID())
	assert.Nil(t, msg.ReplyTo())

	msg, err = in.build(true)
	require.NoError(t, err)
	_, err = uuid.Parse(msg.CustomID())
	assert.NoError(t, err)

	in.CustomID = "fixed"
	msg, err = in.build(true)
	require.NoError(t, err)
	assert.Equal(t, "fixed", msg.CustomID())
}

func TestMessageInput_BuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		input messageInput
	}{
		{"no from", messageInput{To: []string{"a@x.com"}, Subject: "S"}},
		{"bad from", messageInput{From: "not an address", To: []string{"a@x.com"}, Subject: "S"}},
		{"no to", messageInput{From: "a@x.com", Subject: "S"}},
		{"bad reply-to", messageInput{From: "a@x.com", To: []string{"b@x.com"}, Subject: "S", ReplyTo: []string{"<broken"}}},
		{"no subject", messageInput{From: "a@x.com", To: []string{"b@x.com"}}},
		{"empty recipient", messageInput{From: "a@x.com", To: []string{""}, Subject: "S"}},
		{"empty reply-to", messageInput{From: "a@x.com", To: []string{"b@x.com"}, Subject: "S", ReplyTo: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.build(false)
			assert.ErrorIs(t, err, mail.ErrInvalidArgument)
		})
	}
}

func TestLoadBatchFile(t *testing.T) {
	msgs, err := loadBatchFile(writeFile(t, batchYAML))
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, "Passage problems", msgs[0].Subject())
	assert.Equal(t, "no list", msgs[0].ListID())
	assert.True(t, msgs[0].TrackOpens())
	_, err = uuid.Parse(msgs[0].CustomID())
	assert.NoError(t, err, "auto_custom_id fills empty ids")

	assert.Equal(t, "1234-qwerty", msgs[1].CustomID())
	assert.Equal(t, []mail.Address{mail.Addr("orthanc@middleearth.com")}, msgs[1].ReplyTo())
}

func TestLoadBatchFile_Errors(t *testing.T) {
	_, err := loadBatchFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = loadBatchFile(writeFile(t, "messages: [unterminated"))
	assert.Error(t, err)

	_, err = loadBatchFile(writeFile(t, "messages:\n  - from: a@x.com\n    subject: S\n"))
	assert.ErrorIs(t, err, mail.ErrInvalidArgument)
}

func TestBatchCommand(t *testing.T) {
	var bodies [][]byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		bodies = append(bodies, raw)
		_, _ = w.Write([]byte(`{"data":[{"message_id":"m-1","status":"queued"},{"message_id":"m-2","status":"queued"}],"meta":{"rq_time":"0.1"}}`))
	}))
	defer server.Close()

	out, err := runCLI(t, "batch",
		"--file", writeFile(t, batchYAML),
		"--account-id", "id", "--api-key", "key",
		"--endpoint", server.URL,
		"--log-level", "error",
	)
	require.NoError(t, err)

	require.Len(t, bodies, 1)
	var sent []map[string]any
	require.NoError(t, json.Unmarshal(bodies[0], &sent))
	require.Len(t, sent, 2)
	assert.Equal(t, "Passage problems", sent[0]["subject"])
	assert.Equal(t, "Agenda for the next weeks", sent[1]["subject"])

	assert.Contains(t, out, `"message_id": "m-2"`)
}

func TestSendCommand_UnparseableResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	out, err := runCLI(t, "send",
		"--from", "a@x.com", "--to", "b@x.com", "--subject", "S", "--text", "T",
		"--account-id", "id", "--api-key", "key",
		"--endpoint", server.URL,
		"--log-level", "error",
	)
	assert.Error(t, err)
	assert.Contains(t, out, "502 Bad Gateway")
	assert.Contains(t, out, "unable to parse response body")
}

func TestBatchCommand_DryRun(t *testing.T) {
	out, err := runCLI(t, "batch",
		"--file", writeFile(t, batchYAML),
		"--dry-run",
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "logged"`)
	assert.Contains(t, out, `"custom_id": "1234-qwerty"`)
}

func TestBatchCommand_RequiresFile(t *testing.T) {
	_, err := runCLI(t, "batch", "--dry-run")
	assert.Error(t, err)
}

func TestPrintResult(t *testing.T) {
	body := `{"data":{"custom_id":"c-1","status":"rejected","errors":{"code":"invalid","description":"bad recipient","field":"to","errors":{"code":"format","description":"missing @"}}}}`
	res := mail.NewResult(http.StatusUnprocessableEntity, "422 Unprocessable Entity", []byte(body))

	origLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(origLevel) })

	var logs, out bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	err := printResult(ctx, &out, res)
	assert.Error(t, err)
	assert.Contains(t, out.String(), `"status": "rejected"`)

	assert.Contains(t, logs.String(), "bad recipient")
	assert.Contains(t, logs.String(), "missing @")
	assert.Contains(t, logs.String(), `"depth":1`)
}

func TestPrintResult_NoBody(t *testing.T) {
	res := mail.NewResult(http.StatusOK, "200 OK", nil)

	var out bytes.Buffer
	err := printResult(context.Background(), &out, res)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "200 OK")
}
