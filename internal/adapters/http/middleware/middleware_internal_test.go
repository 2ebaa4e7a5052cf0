package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantBytes  int64
		wantServer bool
	}{
		{
			name:       "nothing written defaults to 200",
			write:      func(http.ResponseWriter) {},
			wantStatus: http.StatusOK,
		},
		{
			name: "implicit 200 on write",
			write: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte("queued"))
			},
			wantStatus: http.StatusOK,
			wantBytes:  6,
		},
		{
			name: "first status wins",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusAccepted)
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name: "server error",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("a"))
				_, _ = w.Write([]byte("bc"))
			},
			wantStatus: http.StatusBadGateway,
			wantBytes:  3,
			wantServer: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			sr := recordStatus(rec)
			tt.write(sr)

			if sr.status != tt.wantStatus {
				t.Errorf("status = %d, want %d", sr.status, tt.wantStatus)
			}
			if sr.bytes != tt.wantBytes {
				t.Errorf("bytes = %d, want %d", sr.bytes, tt.wantBytes)
			}
			if sr.serverError() != tt.wantServer {
				t.Errorf("serverError() = %v, want %v", sr.serverError(), tt.wantServer)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("recorder Code = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRecordStatus_ReusesWrapper(t *testing.T) {
	t.Parallel()

	outer := recordStatus(httptest.NewRecorder())
	if inner := recordStatus(outer); inner != outer {
		t.Error("recordStatus wrapped an existing recorder a second time")
	}
	if outer.Unwrap() == nil {
		t.Error("Unwrap() = nil")
	}
}
