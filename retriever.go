package clickguard

import (
	"reflect"

	"github.com/oshokin/clickguard/widget"
)

// onClickListenerField is the struct field read by the reflective retriever.
const onClickListenerField = "OnClickListener"

// listenerRetriever extracts the registered click listener from an element.
type listenerRetriever interface {
	retrieve(e widget.Element) widget.ClickListener
}

// infoRetriever reads elements that keep listeners in a widget.ListenerInfo.
type infoRetriever struct{}

//nolint:ireturn // Listeners are arbitrary implementations.
func (infoRetriever) retrieve(e widget.Element) widget.ClickListener {
	holder, ok := e.(widget.ListenerInfoHolder)
	if !ok {
		return nil
	}

	info := holder.ListenerInfo()
	if info == nil {
		return nil
	}

	return info.OnClickListener
}

// fieldRetriever reads an exported OnClickListener field of a struct element.
type fieldRetriever struct{}

//nolint:ireturn // Listeners are arbitrary implementations.
func (fieldRetriever) retrieve(e widget.Element) (listener widget.ClickListener) {
	defer func() {
		if recover() != nil {
			listener = nil
		}
	}()

	rv := reflect.ValueOf(e)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil
	}

	field := rv.FieldByName(onClickListenerField)
	if !field.IsValid() || !field.CanInterface() {
		return nil
	}

	listener, _ = field.Interface().(widget.ClickListener)

	return listener
}

// retrieverFor picks the retrieval strategy matching the element's listener storage.
//
//nolint:ireturn // Strategies are private implementations.
func retrieverFor(e widget.Element) listenerRetriever {
	if _, ok := e.(widget.ListenerInfoHolder); ok {
		return infoRetriever{}
	}

	return fieldRetriever{}
}
