package types

// Model is a catalog entry: something the desktop app can download and run.
type Model struct {
	// Stable identifier for the model.
	// example: tinyllama-q4
	ID string `json:"id" yaml:"id" toml:"id" example:"tinyllama-q4"`
	// Human-friendly name.
	// example: TinyLlama (Q4)
	Name string `json:"name,omitempty" yaml:"name" toml:"name" example:"TinyLlama (Q4)"`
	// Path to the model file on disk, when the catalog was built from a directory scan.
	// example: /home/user/models/TinyLlama.Q4_K_M.gguf
	Path string `json:"path,omitempty" yaml:"path" toml:"path" example:"/home/user/models/TinyLlama.Q4_K_M.gguf"`
	// Quantization level or variant string.
	// example: Q4_K_M
	Quant string `json:"quant,omitempty" yaml:"quant" toml:"quant" example:"Q4_K_M"`
	// Declared maximum RAM requirement in bytes.
	// example: 4294967296
	MaxRAMRequired uint64 `json:"max_ram_required" yaml:"max_ram_required" toml:"max_ram_required" example:"4294967296"`
}

// MemInfo describes host memory in bytes.
type MemInfo struct {
	// example: 17179869184
	Total uint64 `json:"total" example:"17179869184"`
	// example: 8589934592
	Free uint64 `json:"free,omitempty" example:"8589934592"`
}

// ResourcesInfo is the host resource snapshot returned by a prober.
type ResourcesInfo struct {
	Mem MemInfo `json:"mem"`
}
