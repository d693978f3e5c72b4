package world

// IdCache maps the game's per-zone dynamic ids to stable static ids, keyed
// by player name. A name keeps the same static id across zone transitions
// even though its dynamic id is reassigned on every entry.
type IdCache struct {
	dynToStatic  map[DynamicId]StaticId
	staticToName map[StaticId]string
	nameToStatic map[string]StaticId
	nextStatic   uint32
}

func NewIdCache() *IdCache {
	return &IdCache{
		dynToStatic:  make(map[DynamicId]StaticId),
		staticToName: make(map[StaticId]string),
		nameToStatic: make(map[string]StaticId),
	}
}

// Save records that dynamicID currently refers to name. If name was seen
// before, its existing static id is reused and any other dynamic id still
// pointing at it is dropped, so at most one dynamic id maps to a given
// static id at a time. Otherwise a new static id is allocated.
func (c *IdCache) Save(dynamicID DynamicId, name string) {
	staticID, known := c.nameToStatic[name]
	if !known {
		staticID = StaticId(c.nextStatic)
		c.nextStatic++
		c.nameToStatic[name] = staticID
		c.staticToName[staticID] = name
	} else {
		for dyn, sid := range c.dynToStatic {
			if sid == staticID {
				delete(c.dynToStatic, dyn)
				break
			}
		}
	}
	c.dynToStatic[dynamicID] = staticID
}

// StaticID resolves the static id currently bound to dynamicID.
func (c *IdCache) StaticID(dynamicID DynamicId) (StaticId, bool) {
	staticID, ok := c.dynToStatic[dynamicID]
	return staticID, ok
}

// Name resolves the durable name behind a static id.
func (c *IdCache) Name(staticID StaticId) (string, bool) {
	name, ok := c.staticToName[staticID]
	return name, ok
}
