// Package types models the Exchange Web Services operations and the
// structures they carry. Request types serialize through the xmlcodec
// registry; the schemas binding them are declared in schemas.go.
package types

// Namespace URIs for the XML schemas EWS messages are built from.
const (
	MessagesNamespaceURI = "http://schemas.microsoft.com/exchange/services/2006/messages"
	SOAPNamespaceURI     = "http://schemas.xmlsoap.org/soap/envelope/"
	TypesNamespaceURI    = "http://schemas.microsoft.com/exchange/services/2006/types"
)

// Envelope is the SOAP envelope wrapping every EWS request.
type Envelope struct {
	Body Body
}

// Body is the body of a SOAP request envelope.
type Body struct {
	Contents BodyContents
}

// BodyContents is the set of operations that may appear in a SOAP body.
type BodyContents interface {
	isBodyContents()
}

// BodyContentsMemberFindItem carries a FindItem operation as SOAP body
// contents.
type BodyContentsMemberFindItem struct {
	Value FindItem
}

func (BodyContentsMemberFindItem) isBodyContents() {}

// FindItem requests a list of items matching the provided criteria.
//
// https://learn.microsoft.com/en-us/exchange/client-developer/web-service-reference/finditem
type FindItem struct {
	Traversal       Traversal
	ItemShape       ItemShape
	ParentFolderIds ParentFolderIds
}

// NewFindItem returns a FindItem operation over the given parent folders.
func NewFindItem(traversal Traversal, shape ItemShape, parentFolders ...FolderId) *FindItem {
	return &FindItem{
		Traversal:       traversal,
		ItemShape:       shape,
		ParentFolderIds: ParentFolderIds{Items: parentFolders},
	}
}

// Traversal is the manner in which to traverse nested folders.
type Traversal string

// Valid Traversal values.
const (
	TraversalShallow     Traversal = "Shallow"
	TraversalSoftDeleted Traversal = "SoftDeleted"
	TraversalAssociated  Traversal = "Associated"
)

// ItemShape describes the item properties to include in a response.
type ItemShape struct {
	BaseShape BaseShape
}

// BaseShape is the base set of properties to return for an item or folder.
type BaseShape string

// Valid BaseShape values.
const (
	BaseShapeIdOnly        BaseShape = "IdOnly"
	BaseShapeDefault       BaseShape = "Default"
	BaseShapeAllProperties BaseShape = "AllProperties"
)

// ParentFolderIds lists the folders in which to search for items.
type ParentFolderIds struct {
	Items []FolderId
}

// FolderId identifies a remote folder, either directly or by a
// distinguished name.
type FolderId interface {
	isFolderId()
}

// FolderIdMemberFolderId identifies a folder by its unique identifier.
type FolderIdMemberFolderId struct {
	Id        string
	ChangeKey *string
}

func (FolderIdMemberFolderId) isFolderId() {}

// FolderIdMemberDistinguishedFolderId identifies a well known folder by
// name, e.g. "inbox" or "junkemail".
type FolderIdMemberDistinguishedFolderId struct {
	Id        string
	ChangeKey *string
	Mailbox   *Mailbox
}

func (FolderIdMemberDistinguishedFolderId) isFolderId() {}

// Mailbox identifies the mailbox a distinguished folder belongs to.
// Absent, the folder is resolved against the authenticated account.
type Mailbox struct{}
