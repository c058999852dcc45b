// Package mock provides test double implementations of the ai capability
// interfaces.
//
// The mocks run without external LLM services and record their calls so
// tests can assert call counts and inputs:
//
//	converter := mock.NewMockConverter()
//	converter.ConvertFunc = func(ctx context.Context, chunk []byte) (string, error) {
//	    return "markdown", nil
//	}
//	// ... run the stage ...
//	count := converter.CallCount()
//
// Call recording is mutex-guarded: the pipeline stages invoke these mocks
// from many goroutines at once.
package mock
