package netsvc_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestNetsvc(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Netsvc Tests")
}
