package settings

// mergeSettings merges override settings into base. Scalar fields from the
// override win when set; list fields replace wholesale; extensions merge
// per-key with map values shallow-merged.
func mergeSettings(base, override *Settings) *Settings {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	result.Resolver = mergeResolver(result.Resolver, override.Resolver)
	result.Hooks = mergeHooks(result.Hooks, override.Hooks)

	if override.Extensions != nil {
		if result.Extensions == nil {
			result.Extensions = make(map[string]interface{})
		}
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseValue, exists := result.Extensions[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						result.Extensions[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			result.Extensions[key] = value
		}
	}

	return &result
}

func mergeResolver(base, override *ResolverSettings) *ResolverSettings {
	if override == nil {
		return base
	}
	if base == nil {
		copied := *override
		return &copied
	}

	result := *base

	if override.Target != "" {
		result.Target = override.Target
	}
	if len(override.Exclude) > 0 {
		result.Exclude = override.Exclude
	}
	if len(override.KeepKeys) > 0 {
		result.KeepKeys = override.KeepKeys
	}
	if len(override.Preserve) > 0 {
		result.Preserve = override.Preserve
	}
	if override.SchemaKey != "" {
		result.SchemaKey = override.SchemaKey
	}
	if override.WatchDebounceMs != 0 {
		result.WatchDebounceMs = override.WatchDebounceMs
	}

	return &result
}

func mergeHooks(base, override *HookSettings) *HookSettings {
	if override == nil {
		return base
	}
	if base == nil {
		copied := *override
		return &copied
	}

	result := *base

	if override.Config != "" {
		result.Config = override.Config
	}
	if override.Strict {
		result.Strict = override.Strict
	}

	return &result
}
