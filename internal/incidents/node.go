package incidents

// ComponentName is the registry key of the get incidents component.
const ComponentName = "getIncidents"

// Configuration is the get incidents node configuration. All filters are
// optional.
type Configuration struct {
	AssignmentGroup string `mapstructure:"assignmentGroup"`
	AssignedTo      string `mapstructure:"assignedTo"`
	Caller          string `mapstructure:"caller"`
	Category        string `mapstructure:"category"`
	Subcategory     string `mapstructure:"subcategory"`
	Service         string `mapstructure:"service"`
	State           string `mapstructure:"state"`
	Urgency         string `mapstructure:"urgency"`
	Impact          string `mapstructure:"impact"`
	Priority        string `mapstructure:"priority"`
	Limit           int    `mapstructure:"limit"`
}

// NodeMetadata is what the node setup stores after resolving resources.
type NodeMetadata struct {
	WebhookURL      string        `mapstructure:"webhookUrl"`
	InstanceURL     string        `mapstructure:"instanceUrl"`
	AssignmentGroup *ResourceInfo `mapstructure:"assignmentGroup"`
	AssignedTo      *ResourceInfo `mapstructure:"assignedTo"`
	Caller          *ResourceInfo `mapstructure:"caller"`
}

// ResourceInfo is a resolved ServiceNow reference.
type ResourceInfo struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// DecodeConfiguration decodes a node configuration map. A map that does not
// decode gives the zero Configuration.
func DecodeConfiguration(raw map[string]any) Configuration {
	var cfg Configuration
	if raw == nil {
		return cfg
	}
	if err := decodeWeak(raw, &cfg); err != nil {
		return Configuration{}
	}
	return cfg
}

// DecodeNodeMetadata decodes a node metadata map the same way.
func DecodeNodeMetadata(raw map[string]any) NodeMetadata {
	var md NodeMetadata
	if raw == nil {
		return md
	}
	if err := decodeWeak(raw, &md); err != nil {
		return NodeMetadata{}
	}
	return md
}
