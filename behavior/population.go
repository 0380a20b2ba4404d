package behavior

import (
	"math"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/tickworld/render"
)

// ObjectId is a caller-assigned object identifier.
type ObjectId int

// Object pairs a render handle with the behavior that drives it. The
// behavior is owned by this object alone.
type Object struct {
	Id       ObjectId
	Behavior *Behavior
	Handle   render.Handle
}

// Update advances the object's behavior. Objects without a behavior stay put.
func (o *Object) Update(dt float64) {
	if o.Behavior == nil {
		return
	}
	Advance(o.Behavior, o.Handle, dt)
}

var (
	// ErrDuplicateObject is returned when an id is already in the population.
	ErrDuplicateObject = eris.New("duplicate object id")
	// ErrUnknownObject is returned when an id is not in the population.
	ErrUnknownObject = eris.New("unknown object id")
	// ErrSharedBehavior is returned when a behavior already belongs to another object.
	ErrSharedBehavior = eris.New("behavior already owned by another object")
	// ErrNegativeDelta is returned when a tick is requested with dt < 0.
	ErrNegativeDelta = eris.New("negative tick delta")
)

// Population updates its objects in insertion order.
type Population struct {
	objects []*Object
	index   *intmap.Map[ObjectId, int]
	logger  zerolog.Logger
}

// NewPopulation creates an empty population.
func NewPopulation(logger zerolog.Logger) *Population {
	return &Population{
		index:  intmap.New[ObjectId, int](16),
		logger: logger,
	}
}

// Add appends an object. Ids must be unique and a behavior may belong to
// only one object.
func (p *Population) Add(obj *Object) error {
	if _, ok := p.index.Get(obj.Id); ok {
		return eris.Wrapf(ErrDuplicateObject, "object %d", obj.Id)
	}
	if obj.Behavior != nil {
		for _, other := range p.objects {
			if other.Behavior == obj.Behavior {
				return eris.Wrapf(ErrSharedBehavior, "object %d and %d", other.Id, obj.Id)
			}
		}
	}

	p.index.Put(obj.Id, len(p.objects))
	p.objects = append(p.objects, obj)

	kind := "none"
	if obj.Behavior != nil {
		kind = obj.Behavior.Kind.String()
	}
	p.logger.Debug().Int("object", int(obj.Id)).Str("behavior", kind).Msg("added object")
	return nil
}

// Get looks up an object by id.
func (p *Population) Get(id ObjectId) (*Object, bool) {
	idx, ok := p.index.Get(id)
	if !ok {
		return nil, false
	}
	return p.objects[idx], true
}

// Remove deletes an object, keeping the order of the rest.
func (p *Population) Remove(id ObjectId) error {
	idx, ok := p.index.Get(id)
	if !ok {
		return eris.Wrapf(ErrUnknownObject, "object %d", id)
	}

	p.objects = append(p.objects[:idx], p.objects[idx+1:]...)
	p.index.Del(id)
	for i := idx; i < len(p.objects); i++ {
		p.index.Put(p.objects[i].Id, i)
	}
	return nil
}

// Len returns the number of objects.
func (p *Population) Len() int {
	return len(p.objects)
}

// Objects returns the objects in update order.
func (p *Population) Objects() []*Object {
	return append([]*Object(nil), p.objects...)
}

// Update advances every object by dt in insertion order.
func (p *Population) Update(dt float64) {
	for _, obj := range p.objects {
		obj.Update(dt)
	}
}

// Tick implements driver.Ticker. Behaviors ignore wall-clock time.
func (p *Population) Tick(dt, _ float64) error {
	if dt < 0 || math.IsNaN(dt) {
		return eris.Wrapf(ErrNegativeDelta, "dt=%v", dt)
	}
	p.Update(dt)
	return nil
}
