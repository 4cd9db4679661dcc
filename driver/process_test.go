package driver_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/driver"
)

var _ = Describe("Process", func() {
	It("reports not-running before Start and tolerates Stop on a never-started driver", func() {
		d := driver.NewProcess(nil)
		Expect(d.Status()).To(BeFalse())
		Expect(d.Stop()).To(Succeed())
		Expect(d.Stop()).To(Succeed())
	})

	It("exposes the same Driver surface as Cooperative", func() {
		var _ driver.Driver = driver.NewProcess([]block.Block{})
		var _ driver.Driver = driver.NewCooperative(nil, nil)
	})
})
