package internal

import (
	"context"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestInternal(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Internal Module Suite")
}

var _ = ginkgo.Describe("RequestContext", func() {
	ginkgo.Describe("ContextWithUserID", func() {
		ginkgo.It("should round-trip the user id", func() {
			// Given
			ctx := ContextWithUserID(context.Background(), "42")

			// Then
			gomega.Expect(UserIDFromContext(ctx)).To(gomega.Equal("42"))
		})

		ginkgo.It("should return empty when no user id was set", func() {
			gomega.Expect(UserIDFromContext(context.Background())).To(gomega.BeEmpty())
		})

		ginkgo.It("should return empty for a nil context", func() {
			gomega.Expect(UserIDFromContext(nil)).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("WithTimeout", func() {
		ginkgo.It("should apply the requested timeout", func() {
			// Given
			before := time.Now()

			// When
			ctx, cancel := WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			// Then
			deadline, ok := ctx.Deadline()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(deadline).To(gomega.BeTemporally("~", before.Add(2*time.Second), time.Second))
		})

		ginkgo.It("should fall back to five seconds when the duration is not positive", func() {
			// Given
			before := time.Now()

			// When
			ctx, cancel := WithTimeout(context.Background(), 0)
			defer cancel()

			// Then
			deadline, ok := ctx.Deadline()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(deadline).To(gomega.BeTemporally("~", before.Add(5*time.Second), time.Second))
		})
	})
})
