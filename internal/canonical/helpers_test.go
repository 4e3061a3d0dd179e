package canonical

type kv struct {
	key   string
	value Value
}

func pair(key string, value Value) kv {
	return kv{key: key, value: value}
}

// objectOf builds an Object from pairs. Later pairs win on duplicate keys.
func objectOf(pairs ...kv) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.key] = p.value
	}
	return obj
}

func strs(ss ...string) Array {
	arr := make(Array, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return arr
}

func hashValue(domain string, v Value) (Sum, error) {
	data, err := Marshal(v)
	if err != nil {
		return Sum{}, err
	}
	return HashWithDomain(domain, data), nil
}
