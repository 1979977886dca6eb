//go:build !opencl

package compute

import "errors"

// NewOpenCL reports that the binary was built without OpenCL support.
func NewOpenCL() (Backend, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}
