package tts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phonolab/phonolab/pkg/tts"
)

var _ = Describe("Synthesizer", func() {
	var (
		server *httptest.Server
		calls  atomic.Int32
		status int
		body   map[string]any
		auth   string
	)

	BeforeEach(func() {
		calls.Store(0)
		status = http.StatusOK
		body = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			auth = r.Header.Get("Authorization")
			Expect(r.URL.Path).To(Equal("/v1/audio/speech"))
			_ = json.NewDecoder(r.Body).Decode(&body)
			if status != http.StatusOK {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
				return
			}
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write([]byte("ID3fake-mp3"))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	newSynth := func() *tts.Synthesizer {
		return tts.New(tts.Options{BaseURL: server.URL + "/v1"})
	}

	It("defaults to tts-1 and alloy", func() {
		s := newSynth()
		Expect(s.Model()).To(Equal("tts-1"))
		Expect(s.Voice()).To(Equal("alloy"))
	})

	It("writes the returned audio to a file", func() {
		dst := filepath.Join(GinkgoT().TempDir(), "speech.mp3")
		Expect(newSynth().SynthesizeToFile(context.Background(), "hello", "sk-test", dst)).To(Succeed())

		data, err := os.ReadFile(dst)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal("ID3fake-mp3"))
		Expect(calls.Load()).To(Equal(int32(1)))
		Expect(auth).To(Equal("Bearer sk-test"))
		Expect(body).To(HaveKeyWithValue("model", "tts-1"))
		Expect(body).To(HaveKeyWithValue("voice", "alloy"))
		Expect(body).To(HaveKeyWithValue("input", "hello"))
		Expect(body).To(HaveKeyWithValue("response_format", "mp3"))
	})

	It("does not call the API without text or key", func() {
		dst := filepath.Join(GinkgoT().TempDir(), "speech.mp3")
		Expect(newSynth().SynthesizeToFile(context.Background(), "", "sk-test", dst)).To(MatchError(tts.ErrMissingText))
		Expect(newSynth().SynthesizeToFile(context.Background(), "hello", "", dst)).To(MatchError(tts.ErrMissingAPIKey))
		Expect(calls.Load()).To(Equal(int32(0)))
		Expect(dst).ToNot(BeAnExistingFile())
	})

	It("removes the file when the API fails", func() {
		status = http.StatusUnauthorized
		dst := filepath.Join(GinkgoT().TempDir(), "speech.mp3")
		err := newSynth().SynthesizeToFile(context.Background(), "hello", "bad", dst)
		Expect(err).To(HaveOccurred())
		Expect(calls.Load()).To(Equal(int32(1)))
		Expect(dst).ToNot(BeAnExistingFile())
	})
})
