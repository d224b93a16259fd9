package schema_test

import (
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phonolab/phonolab/core/schema"
)

var _ = Describe("ErrorKind", func() {
	DescribeTable("maps to a fixed status",
		func(kind schema.ErrorKind, status int) {
			Expect(kind.StatusCode()).To(Equal(status))
			Expect(kind.StatusCode()).To(Equal(kind.StatusCode()))
		},
		Entry("validation", schema.ErrorKindValidation, http.StatusBadRequest),
		Entry("conversion", schema.ErrorKindConversion, http.StatusInternalServerError),
		Entry("inference", schema.ErrorKindInference, http.StatusInternalServerError),
		Entry("upstream", schema.ErrorKindUpstream, http.StatusInternalServerError),
		Entry("unknown", schema.ErrorKindUnknown, http.StatusInternalServerError),
	)

	It("is recovered through wrapping", func() {
		sentinel := errors.New("boom")
		err := schema.Errorf(schema.ErrorKindConversion, "ffmpeg: %w", sentinel)
		wrapped := fmt.Errorf("request: %w", err)

		Expect(schema.KindOf(wrapped)).To(Equal(schema.ErrorKindConversion))
		Expect(errors.Is(wrapped, sentinel)).To(BeTrue())
		Expect(err.Error()).To(Equal("ffmpeg: boom"))
	})

	It("treats plain errors as unknown", func() {
		Expect(schema.KindOf(errors.New("plain"))).To(Equal(schema.ErrorKindUnknown))
		Expect(schema.KindOf(nil)).To(Equal(schema.ErrorKindUnknown))
	})

	It("keeps nil errors nil", func() {
		Expect(schema.WrapError(schema.ErrorKindInference, nil)).To(BeNil())
		Expect(schema.KindOf(schema.WrapError(schema.ErrorKindInference, errors.New("x")))).To(Equal(schema.ErrorKindInference))
	})

	It("names every kind", func() {
		Expect(schema.ErrorKindValidation.String()).To(Equal("validation"))
		Expect(schema.ErrorKindUpstream.String()).To(Equal("upstream"))
		Expect(schema.ErrorKind(42).String()).To(Equal("unknown"))
	})
})
