package memory

// IndexType 索引类型
type IndexType string

const (
	IndexTypeVectorHNSW    IndexType = "vector_hnsw"
	IndexTypeVectorIVFFlat IndexType = "vector_ivf_flat"
)

// VectorMetricType 距离度量类型
type VectorMetricType string

const (
	VectorMetricCosine VectorMetricType = "cosine"
	VectorMetricL2     VectorMetricType = "l2"
	VectorMetricIP     VectorMetricType = "inner_product"
)

// VectorIndexConfig 向量索引配置
//
// Params carries index-specific construction options. HNSW requires
// "m", "ef_construction", "ef_search"; IVFFlat requires "lists",
// "probe_lists". All are positive integers.
type VectorIndexConfig struct {
	MetricType VectorMetricType       `json:"metric_type"`
	Dimension  int                    `json:"dimension"`
	Params     map[string]interface{} `json:"params,omitempty"`
}

// intParam extracts a required positive-integer option from the config's
// param map. Returns an error suitable for surfacing as a construction-time
// "bad index options" failure (see ConfigError).
func intParam(params map[string]interface{}, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, &ConfigError{Option: key, Reason: "missing"}
	}
	switch v := raw.(type) {
	case int:
		if v <= 0 {
			return 0, &ConfigError{Option: key, Reason: "must be positive"}
		}
		return v, nil
	case int64:
		if v <= 0 {
			return 0, &ConfigError{Option: key, Reason: "must be positive"}
		}
		return int(v), nil
	case float64:
		if v <= 0 {
			return 0, &ConfigError{Option: key, Reason: "must be positive"}
		}
		return int(v), nil
	default:
		return 0, &ConfigError{Option: key, Reason: "must be an integer"}
	}
}

// ConfigError reports a bad index option discovered at construction time.
// Construction stops at the first bad option and reports it as a single
// "bad index options" error; later options are not checked.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return "bad index options: " + e.Option + " " + e.Reason
}
